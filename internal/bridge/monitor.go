package bridge

import (
	"log/slog"
	"sync"
)

// Monitor is an Engine decorator that tracks the load → expand → draw
// ordering and records violations instead of failing.
type Monitor struct {
	inner  Engine
	logger *slog.Logger

	mu         sync.Mutex
	loaded     bool
	expanded   bool
	calls      map[string]int
	violations []error
}

// NewMonitor wraps e. A nil logger discards log output.
func NewMonitor(e Engine, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Monitor{inner: e, logger: logger, calls: make(map[string]int)}
}

func (m *Monitor) Load(text string) Outcome {
	out := m.inner.Load(text)

	m.mu.Lock()
	m.calls["load"]++
	m.loaded = out.OK
	m.expanded = false
	m.mu.Unlock()

	if !out.OK {
		m.logger.Debug("bridge: load rejected", "message", out.Message)
	}
	return out
}

func (m *Monitor) Expand(s Surface, margin int) {
	m.mu.Lock()
	m.calls["expand"]++
	var cause error
	if !m.loaded {
		cause = ErrNotLoaded
	} else {
		m.expanded = true
	}
	m.mu.Unlock()

	m.violate("expand", cause)
	m.inner.Expand(s, margin)
}

func (m *Monitor) Draw(rc RenderContext) {
	m.mu.Lock()
	m.calls["draw"]++
	var cause error
	switch {
	case !m.loaded:
		cause = ErrNotLoaded
	case !m.expanded:
		cause = ErrNotExpanded
	}
	m.mu.Unlock()

	m.violate("draw", cause)
	m.inner.Draw(rc)
}

func (m *Monitor) Step() {
	m.mu.Lock()
	m.calls["step"]++
	var cause error
	if !m.loaded {
		cause = ErrNotLoaded
	}
	m.mu.Unlock()

	m.violate("step", cause)
	m.inner.Step()
}

// Generation forwards to the wrapped engine when it implements Stats.
func (m *Monitor) Generation() int {
	if s, ok := m.inner.(Stats); ok {
		return s.Generation()
	}
	return 0
}

// Population forwards to the wrapped engine when it implements Stats.
func (m *Monitor) Population() int {
	if s, ok := m.inner.(Stats); ok {
		return s.Population()
	}
	return 0
}

// Calls reports how often the named call ("load", "expand", "draw",
// "step") has been made.
func (m *Monitor) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Violations returns a copy of every ordering violation seen so far.
func (m *Monitor) Violations() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]error, len(m.violations))
	copy(out, m.violations)
	return out
}

func (m *Monitor) violate(call string, cause error) {
	if cause == nil {
		return
	}
	m.mu.Lock()
	m.violations = append(m.violations, &Violation{Call: call, Wrapped: cause})
	m.mu.Unlock()
	m.logger.Error("bridge: ordering violation", "call", call, "error", cause)
}
