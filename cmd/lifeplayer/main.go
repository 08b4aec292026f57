package main

import (
	"fmt"
	"os"

	"github.com/san-kum/lifeplayer/internal/config"
	"github.com/san-kum/lifeplayer/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	patternDir string
	dataDir    string
	logFile    string
	logLevel   string

	// root
	margin  int
	delayMs int
	theme   string

	// snapshot
	snapGen    int
	snapMargin int
	snapOut    string
	snapScale  int

	// play
	playGen    int
	playMargin int
	playDelay  int
	playRecord bool
	playPNG    string

	// survey
	surveyGen     int
	surveyMargin  int
	surveyWorkers int

	plotSVG   string
	writePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifeplayer [pattern]",
		Short: "play cellular automaton patterns in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&patternDir, "dir", "", "pattern directory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lifeplayer", "recorded runs directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.Flags().IntVar(&margin, "margin", config.DefaultMargin, "empty cells around the pattern")
	rootCmd.Flags().IntVar(&delayMs, "delay", config.DefaultDelayMs, "milliseconds between generations")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "validate a pattern file",
		Args:  cobra.ExactArgs(1),
		RunE:  checkPattern,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [pattern]",
		Short: "render a generation to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotPattern,
	}
	snapshotCmd.Flags().IntVar(&snapGen, "gen", 0, "generation to render")
	snapshotCmd.Flags().IntVar(&snapMargin, "margin", 16, "empty cells around the pattern")
	snapshotCmd.Flags().StringVar(&snapOut, "out", "", "output .png or .svg (default <pattern>.png)")
	snapshotCmd.Flags().IntVar(&snapScale, "scale", 4, "pixels per cell")

	playCmd := &cobra.Command{
		Use:   "play [pattern]",
		Short: "play a pattern headless and report its population",
		Args:  cobra.ExactArgs(1),
		RunE:  playHeadless,
	}
	playCmd.Flags().IntVar(&playGen, "gen", 100, "generations to play")
	playCmd.Flags().IntVar(&playMargin, "margin", config.DefaultMargin, "empty cells around the pattern")
	playCmd.Flags().IntVar(&playDelay, "delay", 1, "milliseconds between generations")
	playCmd.Flags().BoolVar(&playRecord, "record", false, "save the run under --data")
	playCmd.Flags().StringVar(&playPNG, "png", "", "also write the final generation to this PNG")

	surveyCmd := &cobra.Command{
		Use:   "survey [pattern...]",
		Short: "play several patterns concurrently and compare them",
		RunE:  surveyPatterns,
	}
	surveyCmd.Flags().IntVar(&surveyGen, "gen", 200, "generations per pattern")
	surveyCmd.Flags().IntVar(&surveyMargin, "margin", 8, "empty cells around each pattern")
	surveyCmd.Flags().IntVar(&surveyWorkers, "workers", 0, "concurrent runs (default GOMAXPROCS)")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the population of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the plot as SVG")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in presets and pattern files",
		RunE:  listPatterns,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "write it to this path instead")

	rootCmd.AddCommand(checkCmd, snapshotCmd, playCmd, surveyCmd, runsCmd, plotCmd, patternsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// override reports whether the named flag should replace the config value:
// always when set explicitly, and for every flag when no config file is used.
func override(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && (f.Changed || configFile == "")
}

// loadConfig reads --config when given and applies the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if override(cmd, "dir") && patternDir != "" {
		cfg.PatternDir = patternDir
	}
	if override(cmd, "log") && logFile != "" {
		cfg.LogFile = logFile
	}
	if override(cmd, "log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if override(cmd, "margin") {
		cfg.Margin = margin
	}
	if override(cmd, "delay") {
		cfg.DelayMs = delayMs
	}
	if override(cmd, "theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	pattern := cfg.Pattern
	if len(args) > 0 {
		pattern = args[0]
	}
	return tui.Run(tui.Options{Config: cfg, Pattern: pattern, Logger: logger})
}
