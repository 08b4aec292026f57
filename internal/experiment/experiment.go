// Package experiment runs a pattern headlessly through the playback
// controller for a fixed number of generations.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/lifeplayer/internal/bridge"
	"github.com/san-kum/lifeplayer/internal/ingest"
	"github.com/san-kum/lifeplayer/internal/life"
	"github.com/san-kum/lifeplayer/internal/metrics"
	"github.com/san-kum/lifeplayer/internal/player"
	"github.com/san-kum/lifeplayer/internal/render"
	"github.com/san-kum/lifeplayer/internal/schedule"
)

var ErrLoadFailed = errors.New("load failed")

type Config struct {
	Source      Source
	Margin      int
	Delay       time.Duration
	Generations int
	MaxCells    int
	Scale       int
}

type Result struct {
	Pattern     string
	Rule        string
	Width       int
	Height      int
	Populations []int
	Metrics     map[string]float64
	Image       *render.Image
	Violations  []error
}

type Experiment struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Experiment{cfg: cfg, logger: logger}
}

// Run loads the source, plays it until Generations steps have been drawn
// and returns the recorded populations. If ctx ends first, the partial
// result is returned with ctx's error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.cfg.Generations < 0 {
		return nil, fmt.Errorf("experiment: negative generation count %d", e.cfg.Generations)
	}
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	loop := schedule.NewLoop(64)
	clock := schedule.NewRealtime(loop.Post)

	var engineOpts []life.Option
	if e.cfg.MaxCells > 0 {
		engineOpts = append(engineOpts, life.WithMaxCells(e.cfg.MaxCells))
	}
	engine := life.NewEngine(append(engineOpts, life.WithLogger(e.logger))...)
	monitor := bridge.NewMonitor(engine, e.logger)
	img := render.New(render.WithScale(e.cfg.Scale))

	rec := &recorder{
		next:    img,
		metrics: metrics.Default(),
		limit:   e.cfg.Generations,
	}

	ctrl, err := player.New(player.Options{
		Engine:    monitor,
		Surface:   img,
		Context:   rec,
		Reader:    ingest.NewReader(loop.Post, e.logger),
		Scheduler: clock,
		Logger:    e.logger,
		Margin:    e.cfg.Margin,
		Delay:     e.cfg.Delay,
	})
	if err != nil {
		return nil, err
	}
	defer ctrl.Close()

	var failure error
	rec.onFirst = func() {
		clock.AfterFunc(0, func() {
			if err := ctrl.Start(); err != nil {
				failure = err
				stop()
			}
		})
	}
	rec.onDone = func() {
		ctrl.Close()
		stop()
	}
	watch := clock.Every(10*time.Millisecond, func() {
		if st := ctrl.Status(); st.State == player.LoadFailed {
			failure = fmt.Errorf("%w: %s", ErrLoadFailed, st.Message)
			stop()
		}
	})
	defer watch.Cancel()

	src := e.cfg.Source
	loop.Post(func() {
		if src.Path == "" {
			ctrl.LoadText(src.Name, src.Text)
			return
		}
		ctrl.SelectFiles(src.Path)
	})

	e.logger.Info("experiment: run started", "pattern", src.Name, "generations", e.cfg.Generations)
	_ = loop.Run(runCtx)

	if failure != nil {
		return nil, failure
	}

	res := &Result{
		Pattern:     src.Name,
		Populations: rec.populations,
		Metrics:     metrics.Collect(rec.metrics),
		Image:       img,
		Violations:  monitor.Violations(),
	}
	res.Width, res.Height = rec.w, rec.h
	if p := engine.Pattern(); p != nil {
		res.Rule = p.Rule.String()
	}

	if !rec.finished {
		return res, ctx.Err()
	}
	e.logger.Info("experiment: run finished",
		"pattern", src.Name,
		"generations", len(rec.populations)-1,
		"width", res.Width,
		"height", res.Height,
	)
	return res, nil
}

// recorder is a RenderContext that observes every drawn generation before
// passing it on.
type recorder struct {
	next    bridge.RenderContext
	metrics []metrics.Metric
	limit   int

	onFirst func()
	onDone  func()

	w, h        int
	populations []int
	finished    bool
}

func (r *recorder) PutCells(w, h int, cells []uint8) {
	r.next.PutCells(w, h, cells)
	if r.finished {
		return
	}
	r.w, r.h = w, h

	pop := 0
	for _, c := range cells {
		if c != 0 {
			pop++
		}
	}
	gen := len(r.populations)
	r.populations = append(r.populations, pop)
	for _, m := range r.metrics {
		m.Observe(gen, pop)
	}

	switch {
	case gen >= r.limit:
		r.finished = true
		if r.onDone != nil {
			r.onDone()
		}
	case gen == 0 && r.onFirst != nil:
		r.onFirst()
	}
}
