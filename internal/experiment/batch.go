package experiment

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
)

// Batch runs one experiment per source with a shared base config.
type Batch struct {
	base    Config
	workers int
	logger  *slog.Logger
}

// NewBatch returns a batch limited to workers concurrent runs. workers <= 0
// uses GOMAXPROCS.
func NewBatch(base Config, workers int, logger *slog.Logger) *Batch {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Batch{base: base, workers: workers, logger: logger}
}

// Outcome is the result of one source in a batch.
type Outcome struct {
	Source Source
	Result *Result
	Err    error
}

// Run plays every source and returns outcomes in source order. A failed
// source does not stop the others.
func (b *Batch) Run(ctx context.Context, sources []Source) []Outcome {
	out := make([]Outcome, len(sources))
	sem := make(chan struct{}, b.workers)

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(idx int, src Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				out[idx] = Outcome{Source: src, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			cfg := b.base
			cfg.Source = src
			res, err := New(cfg, b.logger.With("pattern", src.Name)).Run(ctx)
			out[idx] = Outcome{Source: src, Result: res, Err: err}
		}(i, src)
	}
	wg.Wait()

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
		}
	}
	b.logger.Info("experiment: batch finished", "sources", len(sources), "failed", failed)
	return out
}
