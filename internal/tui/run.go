package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/lifeplayer/internal/config"
	"github.com/san-kum/lifeplayer/internal/ingest"
	"github.com/san-kum/lifeplayer/internal/schedule"
)

type Options struct {
	Config  *config.Config
	Pattern string
	Logger  *slog.Logger
}

// Run starts the interactive player and blocks until the user quits.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// program.Send is only known once the program exists.
	var program *tea.Program
	post := func(fn func()) { program.Send(runMsg{fn: fn}) }

	m, err := newModel(cfg, opts.Pattern, deps{
		scheduler: schedule.NewRealtime(post),
		reader:    ingest.NewReader(post, logger),
	}, logger)
	if err != nil {
		return err
	}

	program = tea.NewProgram(m, tea.WithAltScreen())
	logger.Info("tui: starting", "pattern", opts.Pattern, "theme", cfg.Theme)
	_, err = program.Run()
	m.ctrl.Close()
	return err
}
