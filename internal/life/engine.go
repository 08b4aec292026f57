package life

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/lifeplayer/internal/bridge"
)

// DefaultMaxCells bounds the grid so a huge margin cannot exhaust memory.
const DefaultMaxCells = 1 << 22

// Engine adapts a Game to the bridge contract. It keeps the last source
// text so Expand can rebuild the grid for a new margin.
type Engine struct {
	maxCells int
	margin   int
	logger   *slog.Logger

	src     string
	pattern *Pattern
	game    *Game
}

type Option func(*Engine)

// WithMaxCells caps width*height of the grid.
func WithMaxCells(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCells = n
		}
	}
}

// WithMargin sets the margin used by Load before the first Expand.
func WithMargin(margin int) Option {
	return func(e *Engine) {
		if margin >= 0 {
			e.margin = margin
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxCells: DefaultMaxCells,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load parses text and rebuilds the grid with the current margin.
func (e *Engine) Load(text string) bridge.Outcome {
	e.src = text
	e.pattern = nil
	e.game = nil

	p, err := ParseRLELimit(text, e.maxCells)
	if err != nil {
		return bridge.Failure(err.Error())
	}
	if exceeds(p.Width, p.Height, e.maxCells) {
		return bridge.Failure(tooLarge(p.Width, p.Height, e.maxCells).Error())
	}

	e.pattern = p
	e.rebuild()
	return bridge.Success()
}

// Expand rebuilds the grid with margin cells of padding on every side and
// resizes s to match. A margin that would exceed the cell limit is reduced
// to the largest one that fits.
func (e *Engine) Expand(s bridge.Surface, margin int) {
	if margin < 0 {
		margin = 0
	}
	e.margin = margin
	if e.pattern == nil {
		return
	}
	e.rebuild()
	if s != nil {
		s.SetSize(e.game.Width(), e.game.Height())
	}
}

// Draw puts the current generation onto rc.
func (e *Engine) Draw(rc bridge.RenderContext) {
	if e.game == nil || rc == nil {
		return
	}
	rc.PutCells(e.game.Width(), e.game.Height(), e.game.Cells())
}

func (e *Engine) Step() {
	if e.game == nil {
		return
	}
	e.game.Step()
}

func (e *Engine) Generation() int {
	if e.game == nil {
		return 0
	}
	return e.game.Generation()
}

func (e *Engine) Population() int {
	if e.game == nil {
		return 0
	}
	return e.game.Population()
}

// Pattern returns the last successfully parsed pattern, or nil.
func (e *Engine) Pattern() *Pattern { return e.pattern }

// Margin returns the margin applied to the current grid.
func (e *Engine) Margin() int { return e.margin }

// Game exposes the grid for headless callers.
func (e *Engine) Game() *Game { return e.game }

func (e *Engine) rebuild() {
	p := e.pattern
	margin := e.fitMargin(p.Width, p.Height, e.margin)
	if margin != e.margin {
		e.logger.Warn("life: margin reduced to fit cell limit",
			"requested", e.margin,
			"applied", margin,
			"max_cells", e.maxCells,
		)
		e.margin = margin
	}

	g := NewGame(p.Width+2*margin, p.Height+2*margin, p.Rule)
	for _, c := range p.Cells {
		g.Set(c.X+margin, c.Y+margin)
	}
	e.game = g
}

func (e *Engine) fitMargin(w, h, margin int) int {
	fits := func(m int) bool {
		pw, ok := padded(w, m, e.maxCells)
		if !ok {
			return false
		}
		ph, ok := padded(h, m, e.maxCells)
		return ok && !exceeds(pw, ph, e.maxCells)
	}
	if fits(margin) {
		return margin
	}
	lo, hi := 0, min(margin, e.maxCells/2)
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// padded returns n+2*m when it stays within limit.
func padded(n, m, limit int) (int, bool) {
	if n > limit || m > (limit-n)/2 {
		return 0, false
	}
	return n + 2*m, true
}

// exceeds reports whether a w×h grid holds more than limit cells, without
// overflowing.
func exceeds(w, h, limit int) bool {
	if w > limit || h > limit {
		return true
	}
	if w <= 0 || h <= 0 {
		return false
	}
	return w > limit/h
}

func tooLarge(w, h, limit int) error {
	return fmt.Errorf("%w: %dx%d cells exceeds limit %d", ErrTooLarge, w, h, limit)
}
