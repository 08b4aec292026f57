package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMargin   = 200
	DefaultDelayMs  = 10
	DefaultTheme    = "phosphor"
	DefaultMaxCells = 1 << 22
	DefaultLogLevel = "info"
)

// MaxDelayMs is the largest delay_ms that converts to a time.Duration.
const MaxDelayMs int64 = math.MaxInt64 / int64(time.Millisecond)

var (
	ErrInvalidMargin   = errors.New("config: margin must be >= 0")
	ErrInvalidDelay    = errors.New("config: delay_ms must be > 0 and fit a duration")
	ErrInvalidMaxCells = errors.New("config: max_cells must be > 0")
	ErrInvalidLogLevel = errors.New("config: unknown log_level")
)

type Config struct {
	Margin     int    `yaml:"margin"`
	DelayMs    int    `yaml:"delay_ms"`
	Pattern    string `yaml:"pattern,omitempty"`
	PatternDir string `yaml:"pattern_dir,omitempty"`
	Theme      string `yaml:"theme"`
	MaxCells   int    `yaml:"max_cells"`
	LogFile    string `yaml:"log_file,omitempty"`
	LogLevel   string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Margin:   DefaultMargin,
		DelayMs:  DefaultDelayMs,
		Theme:    DefaultTheme,
		MaxCells: DefaultMaxCells,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads path over the defaults, so omitted keys keep default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Margin < 0:
		return fmt.Errorf("%w: %d", ErrInvalidMargin, c.Margin)
	case c.DelayMs <= 0 || int64(c.DelayMs) > MaxDelayMs:
		return fmt.Errorf("%w: %d", ErrInvalidDelay, c.DelayMs)
	case c.MaxCells <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidMaxCells, c.MaxCells)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}
