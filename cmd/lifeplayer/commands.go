package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifeplayer/internal/config"
	"github.com/san-kum/lifeplayer/internal/experiment"
	"github.com/san-kum/lifeplayer/internal/export"
	"github.com/san-kum/lifeplayer/internal/ingest"
	"github.com/san-kum/lifeplayer/internal/life"
	"github.com/san-kum/lifeplayer/internal/render"
	"github.com/san-kum/lifeplayer/internal/storage"
	"github.com/san-kum/lifeplayer/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cliLogger writes to the configured log file, or to stderr when the log
// level was asked for explicitly.
func cliLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, func() error, error) {
	var fallback io.Writer
	if cmd.Flags().Changed("log-level") {
		fallback = os.Stderr
	}
	return newLogger(cfg.LogFile, cfg.LogLevel, fallback)
}

// sourceText returns the pattern text for src, reading files through the
// ingestion reader.
func sourceText(ctx context.Context, src experiment.Source, logger *slog.Logger) (string, error) {
	if src.Path == "" {
		return src.Text, nil
	}
	res := ingest.NewReader(nil, logger).ReadFile(ctx, src.Path)
	if !res.OK() {
		return "", res.Err
	}
	return res.Text, nil
}

func checkPattern(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := cliLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	res := ingest.NewReader(nil, logger).ReadFile(cmd.Context(), args[0])
	if !res.OK() {
		return res.Err
	}

	engine := life.NewEngine(life.WithMaxCells(cfg.MaxCells), life.WithLogger(logger))
	if out := engine.Load(res.Text); !out.OK {
		return fmt.Errorf("%s: %s", args[0], out.Message)
	}

	p := engine.Pattern()
	name := p.Name
	if name == "" {
		name = filepath.Base(args[0])
	}
	fmt.Printf("ok: %s\n", name)
	fmt.Printf("  size:  %dx%d\n", p.Width, p.Height)
	fmt.Printf("  cells: %d\n", len(p.Cells))
	fmt.Printf("  rule:  %s\n", p.Rule)
	for _, c := range p.Comments {
		fmt.Printf("  # %s\n", c)
	}
	return nil
}

func snapshotPattern(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if snapGen < 0 || snapMargin < 0 {
		return fmt.Errorf("--gen and --margin must be >= 0")
	}
	logger, closeLog, err := cliLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := experiment.NewRegistry(cfg.PatternDir).Resolve(args[0])
	if err != nil {
		return err
	}
	text, err := sourceText(cmd.Context(), src, logger)
	if err != nil {
		return err
	}

	engine := life.NewEngine(life.WithMaxCells(cfg.MaxCells), life.WithLogger(logger))
	if out := engine.Load(text); !out.OK {
		return fmt.Errorf("%s: %s", src.Name, out.Message)
	}

	out := snapOut
	if out == "" {
		out = strings.TrimSuffix(src.Name, filepath.Ext(src.Name)) + ".png"
	}

	if strings.EqualFold(filepath.Ext(out), ".svg") {
		canvas := viz.NewCanvas(0, 0)
		engine.Expand(canvas, snapMargin)
		for i := 0; i < snapGen; i++ {
			engine.Step()
		}
		engine.Draw(canvas)
		fill := string(viz.GetTheme(cfg.Theme).Cell)
		if err := os.WriteFile(out, []byte(export.CanvasToSVG(canvas, float64(snapScale), fill)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d cells)\n", out, canvas.Population())
		return nil
	}

	img := render.New(render.WithScale(snapScale))
	engine.Expand(img, snapMargin)
	for i := 0; i < snapGen; i++ {
		engine.Step()
	}
	engine.Draw(img)
	img.Caption = fmt.Sprintf("%s  gen %d  pop %d", src.Name, engine.Generation(), engine.Population())

	if err := img.SavePNG(out); err != nil {
		return err
	}
	w, h := img.Size()
	fmt.Printf("wrote %s (%dx%d)\n", out, w, h)
	return nil
}

func playHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if override(cmd, "margin") {
		cfg.Margin = playMargin
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if playDelay <= 0 || int64(playDelay) > config.MaxDelayMs {
		return fmt.Errorf("--delay must be between 1 and %d", config.MaxDelayMs)
	}
	logger, closeLog, err := cliLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := experiment.NewRegistry(cfg.PatternDir).Resolve(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	delay := time.Duration(playDelay) * time.Millisecond
	start := time.Now()
	res, err := experiment.New(experiment.Config{
		Source:      src,
		Margin:      cfg.Margin,
		Delay:       delay,
		Generations: playGen,
		MaxCells:    cfg.MaxCells,
	}, logger).Run(ctx)
	if res == nil || len(res.Populations) == 0 {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted: %v\n", err)
	}

	gens := len(res.Populations) - 1
	fmt.Printf("pattern:     %s (%s)\n", res.Pattern, res.Rule)
	fmt.Printf("grid:        %dx%d\n", res.Width, res.Height)
	fmt.Printf("generations: %d in %v\n", gens, time.Since(start).Round(time.Millisecond))
	fmt.Printf("population:  %d -> %d\n", res.Populations[0], res.Populations[gens])
	for _, name := range []string{"peak", "mean", "churn", "settled"} {
		fmt.Printf("  %-8s %.2f\n", name, res.Metrics[name])
	}
	if len(res.Violations) > 0 {
		fmt.Printf("bridge violations: %d\n", len(res.Violations))
	}
	if len(res.Populations) > 1 {
		fmt.Println()
		fmt.Println(populationPlot(res.Populations, "population vs generation"))
	}

	if playPNG != "" {
		res.Image.Caption = fmt.Sprintf("%s  gen %d  pop %d", res.Pattern, gens, res.Populations[gens])
		if err := res.Image.SavePNG(playPNG); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", playPNG)
	}

	if playRecord {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(&storage.Run{
			Pattern:     res.Pattern,
			Rule:        res.Rule,
			Margin:      cfg.Margin,
			Delay:       delay,
			Width:       res.Width,
			Height:      res.Height,
			Populations: res.Populations,
			Metrics:     res.Metrics,
		})
		if err != nil {
			return err
		}
		fmt.Printf("recorded run %s\n", runID)
	}
	return err
}

// surveyPatterns plays every pattern the registry knows, or the named ones,
// and tabulates their metrics.
func surveyPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if override(cmd, "margin") {
		cfg.Margin = surveyMargin
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, closeLog, err := cliLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := experiment.NewRegistry(cfg.PatternDir)
	var srcs []experiment.Source
	if len(args) == 0 {
		if srcs, err = reg.List(); err != nil {
			return err
		}
	}
	for _, arg := range args {
		src, err := reg.Resolve(arg)
		if err != nil {
			return err
		}
		srcs = append(srcs, src)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := experiment.NewBatch(experiment.Config{
		Margin:      cfg.Margin,
		Delay:       time.Millisecond,
		Generations: surveyGen,
		MaxCells:    cfg.MaxCells,
	}, surveyWorkers, logger).Run(ctx, srcs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tGRID\tSTART\tEND\tPEAK\tMEAN\tSETTLED\tSTATUS")
	for _, o := range out {
		res := o.Result
		if res == nil || len(res.Populations) == 0 {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t%v\n", o.Source.Name, o.Err)
			continue
		}
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		last := len(res.Populations) - 1
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%.0f\t%.1f\t%.0f\t%s\n",
			o.Source.Name,
			res.Width, res.Height,
			res.Populations[0],
			res.Populations[last],
			res.Metrics["peak"],
			res.Metrics["mean"],
			res.Metrics["settled"],
			status,
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATTERN\tTIME\tGENS\tGRID\tPEAK\tRULE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%.0f\t%s\n",
			run.ID,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Generations,
			run.Width,
			run.Height,
			run.Metrics["peak"],
			run.Rule,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	pops, err := st.LoadPopulations(runID)
	if err != nil {
		return err
	}
	if len(pops) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("pattern: %s\n", meta.Pattern)
	fmt.Printf("generations: %d\n\n", meta.Generations)
	fmt.Println(populationPlot(pops, "population vs generation"))

	if plotSVG != "" {
		if err := os.WriteFile(plotSVG, []byte(export.PopulationToSVG(pops, 800, 300, "#33ff66")), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", plotSVG)
	}
	return nil
}

func populationPlot(pops []int, caption string) string {
	data := make([]float64, len(pops))
	for i, p := range pops {
		data[i] = float64(p)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func listPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	srcs, err := experiment.NewRegistry(cfg.PatternDir).List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tDESCRIPTION")
	for _, s := range srcs {
		if s.Preset {
			p, _ := config.GetPreset(s.Name)
			fmt.Fprintf(w, "%s\tpreset\t%s\n", s.Name, p.Description)
			continue
		}
		fmt.Fprintf(w, "%s\tfile\t%s\n", s.Name, s.Path)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", writePath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
