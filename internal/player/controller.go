package player

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/lifeplayer/internal/bridge"
	"github.com/san-kum/lifeplayer/internal/ingest"
	"github.com/san-kum/lifeplayer/internal/schedule"
)

const (
	DefaultDelay = 10 * time.Millisecond
	HistorySize  = 120
)

// Reader resolves a file selection to text. done runs on the loop thread.
type Reader interface {
	Read(path string, done func(ingest.Result))
}

// Notifier shows the "ready to play" hint after a successful load.
type Notifier interface {
	Schedule()
	Hide()
	Visible() bool
}

type Options struct {
	Engine    bridge.Engine
	Surface   bridge.Surface
	Context   bridge.RenderContext
	Reader    Reader
	Scheduler schedule.Scheduler
	Notifier  Notifier
	Logger    *slog.Logger

	Margin int
	Delay  time.Duration
}

// Status is a read-only view of the controller for rendering.
type Status struct {
	State      State
	Loading    bool
	Source     string
	Message    string
	Margin     int
	Delay      time.Duration
	Generation int
	Population int
	History    []int
	Notice     bool
}

type Controller struct {
	engine  bridge.Engine
	surface bridge.Surface
	rc      bridge.RenderContext
	reader  Reader
	sched   schedule.Scheduler
	notice  Notifier
	logger  *slog.Logger

	state   State
	loading bool
	attempt uint64
	source  string
	text    string
	message string

	margin int
	delay  time.Duration

	loop       schedule.Handle
	generation int
	history    []int
}

func New(opts Options) (*Controller, error) {
	switch {
	case opts.Engine == nil:
		return nil, fmt.Errorf("%w: Engine", ErrMissingOption)
	case opts.Surface == nil:
		return nil, fmt.Errorf("%w: Surface", ErrMissingOption)
	case opts.Context == nil:
		return nil, fmt.Errorf("%w: Context", ErrMissingOption)
	case opts.Reader == nil:
		return nil, fmt.Errorf("%w: Reader", ErrMissingOption)
	case opts.Scheduler == nil:
		return nil, fmt.Errorf("%w: Scheduler", ErrMissingOption)
	}
	if opts.Margin < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMargin, opts.Margin)
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDelay, opts.Delay)
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Notifier == nil {
		opts.Notifier = silentNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		engine:  opts.Engine,
		surface: opts.Surface,
		rc:      opts.Context,
		reader:  opts.Reader,
		sched:   opts.Scheduler,
		notice:  opts.Notifier,
		logger:  opts.Logger,
		state:   Idle,
		margin:  opts.Margin,
		delay:   opts.Delay,
		history: make([]int, 0, HistorySize),
	}, nil
}

func (c *Controller) State() State { return c.state }

// SelectFiles starts loading the first path. An empty selection is a no-op.
// Any in-flight read is abandoned: its result will be discarded.
func (c *Controller) SelectFiles(paths ...string) {
	if len(paths) == 0 || paths[0] == "" {
		return
	}
	path := paths[0]
	attempt := c.begin(path)

	c.logger.Info("player: loading file", "path", path, "attempt", attempt)
	c.reader.Read(path, func(res ingest.Result) {
		c.resolve(attempt, res)
	})
}

// LoadText loads pattern text that needs no ingestion, such as a preset.
func (c *Controller) LoadText(source, text string) {
	attempt := c.begin(source)
	c.logger.Info("player: loading text", "source", source, "attempt", attempt)
	c.resolve(attempt, ingest.Result{Path: source, Text: text})
}

func (c *Controller) begin(source string) uint64 {
	c.attempt++
	c.stopLoop()
	c.notice.Hide()
	c.state = Loading
	c.loading = true
	c.text = ""
	c.message = ""
	c.source = source
	return c.attempt
}

func (c *Controller) resolve(attempt uint64, res ingest.Result) {
	if attempt != c.attempt {
		c.logger.Debug("player: discarding stale load result",
			"attempt", attempt,
			"current", c.attempt,
			"path", res.Path,
		)
		return
	}
	if !res.OK() {
		c.fail(res.Err.Error())
		return
	}
	c.text = res.Text
	c.reload()
}

// reload runs load → expand → draw on the current text.
func (c *Controller) reload() {
	c.stopLoop()

	out := c.engine.Load(c.text)
	if !out.OK {
		c.fail(out.Message)
		return
	}
	c.engine.Expand(c.surface, c.margin)
	c.engine.Draw(c.rc)

	prev := c.state
	c.state = LoadedPaused
	c.loading = false
	c.message = ""
	c.generation = 0
	c.history = c.history[:0]
	c.sample()

	c.logger.Info("player: pattern ready",
		"source", c.source,
		"margin", c.margin,
		"population", c.population(),
	)
	if prev != LoadedPaused {
		c.notice.Schedule()
	}
}

func (c *Controller) fail(message string) {
	c.stopLoop()
	c.state = LoadFailed
	c.loading = false
	c.message = message
	c.logger.Warn("player: load failed", "source", c.source, "message", message)
}

// Start begins a fresh step-loop, replacing any running one.
func (c *Controller) Start() error {
	switch {
	case c.state == Loading:
		return ErrBusy
	case !c.state.Ready():
		return ErrNotReady
	}

	c.stopLoop()
	c.loop = c.sched.Every(c.delay, c.tick)
	c.state = Playing
	c.logger.Info("player: playback started", "delay", c.delay, "generation", c.generation)
	return nil
}

func (c *Controller) tick() {
	c.engine.Step()
	c.engine.Draw(c.rc)
	c.generation++
	c.sample()
}

// Reset reloads the current pattern text from generation zero.
func (c *Controller) Reset() error {
	if c.state == Loading {
		return ErrBusy
	}
	if c.text == "" {
		return ErrNoPattern
	}
	c.reload()
	return nil
}

// SetMargin stores m and, when a pattern is present, reloads and redraws it.
// The running loop is always cancelled by the reload.
func (c *Controller) SetMargin(m int) error {
	if m < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMargin, m)
	}
	if m == c.margin {
		return nil
	}
	c.margin = m
	c.logger.Debug("player: margin changed", "margin", m)
	if c.text != "" && c.state != Loading {
		c.reload()
	}
	return nil
}

// SetDelay stores d for the next Start. A running loop keeps its interval.
func (c *Controller) SetDelay(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, d)
	}
	c.delay = d
	c.logger.Debug("player: delay changed", "delay", d)
	return nil
}

// DismissError acknowledges a failure and returns to Idle.
func (c *Controller) DismissError() {
	if c.state != LoadFailed {
		return
	}
	c.state = Idle
	c.message = ""
}

// Close cancels the step-loop.
func (c *Controller) Close() {
	c.stopLoop()
	if c.state == Playing {
		c.state = LoadedPaused
	}
}

func (c *Controller) Status() Status {
	history := make([]int, len(c.history))
	copy(history, c.history)
	return Status{
		State:      c.state,
		Loading:    c.loading,
		Source:     c.source,
		Message:    c.message,
		Margin:     c.margin,
		Delay:      c.delay,
		Generation: c.generation,
		Population: c.population(),
		History:    history,
		Notice:     c.notice.Visible(),
	}
}

func (c *Controller) stopLoop() {
	if c.loop == nil {
		return
	}
	c.loop.Cancel()
	c.loop = nil
	c.logger.Debug("player: playback loop cancelled", "generation", c.generation)
}

func (c *Controller) population() int {
	if s, ok := c.engine.(bridge.Stats); ok {
		return s.Population()
	}
	return 0
}

func (c *Controller) sample() {
	if _, ok := c.engine.(bridge.Stats); !ok {
		return
	}
	if len(c.history) == HistorySize {
		copy(c.history, c.history[1:])
		c.history = c.history[:HistorySize-1]
	}
	c.history = append(c.history, c.population())
}

type silentNotifier struct{}

func (silentNotifier) Schedule()     {}
func (silentNotifier) Hide()         {}
func (silentNotifier) Visible() bool { return false }
