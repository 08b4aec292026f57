// Package metrics summarises a run from its per-generation population.
package metrics

import "math"

type Metric interface {
	Name() string
	Observe(generation, population int)
	Value() float64
	Reset()
}

// Peak is the largest population seen.
type Peak struct {
	max int
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(_ int, population int) {
	p.max = max(p.max, population)
}

func (p *Peak) Value() float64 { return float64(p.max) }
func (p *Peak) Reset()         { p.max = 0 }

// Mean is the average population over all observed generations.
type Mean struct {
	sum     float64
	samples int
}

func NewMean() *Mean { return &Mean{} }

func (m *Mean) Name() string { return "mean" }

func (m *Mean) Observe(_ int, population int) {
	m.sum += float64(population)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// Churn is the mean absolute change in population between generations.
type Churn struct {
	last    int
	seen    bool
	sum     float64
	samples int
}

func NewChurn() *Churn { return &Churn{} }

func (c *Churn) Name() string { return "churn" }

func (c *Churn) Observe(_ int, population int) {
	if c.seen {
		c.sum += math.Abs(float64(population - c.last))
		c.samples++
	}
	c.last = population
	c.seen = true
}

func (c *Churn) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Churn) Reset() { *c = Churn{} }

// Settled reports the first generation after which the population stayed
// unchanged, or -1 while it is still moving.
type Settled struct {
	last  int
	since int
	seen  bool
}

func NewSettled() *Settled { return &Settled{since: -1} }

func (s *Settled) Name() string { return "settled" }

func (s *Settled) Observe(generation, population int) {
	switch {
	case !s.seen:
		s.since = generation
	case population != s.last:
		s.since = generation
	}
	s.last = population
	s.seen = true
}

func (s *Settled) Value() float64 {
	if !s.seen {
		return -1
	}
	return float64(s.since)
}

func (s *Settled) Reset() { *s = Settled{since: -1} }

// Default returns a fresh set of every metric.
func Default() []Metric {
	return []Metric{NewPeak(), NewMean(), NewChurn(), NewSettled()}
}

// Collect returns each metric's value keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
