// Package notify drives the "new data loaded" toast: hidden for ShowAfter,
// then visible for VisibleFor.
package notify

import (
	"sync"
	"time"

	"github.com/san-kum/lifeplayer/internal/schedule"
)

const (
	ShowAfter  = 1000 * time.Millisecond
	VisibleFor = 5000 * time.Millisecond
)

// Scheduler owns the toast visibility flag. Overlapping Schedule calls are
// independent: each one shows and later hides the flag on its own timers.
type Scheduler struct {
	sched schedule.Scheduler

	mu      sync.Mutex
	visible bool
	pending int
}

func New(s schedule.Scheduler) *Scheduler {
	return &Scheduler{sched: s}
}

// Schedule starts one show/hide sequence.
func (n *Scheduler) Schedule() {
	n.mu.Lock()
	n.pending++
	n.mu.Unlock()

	n.sched.AfterFunc(ShowAfter, func() {
		n.set(true)
		n.sched.AfterFunc(VisibleFor, func() {
			n.mu.Lock()
			n.visible = false
			n.pending--
			n.mu.Unlock()
		})
	})
}

// Hide clears the flag now. Pending sequences keep running.
func (n *Scheduler) Hide() {
	n.set(false)
}

func (n *Scheduler) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// Pending reports sequences that have not reached their hide stage.
func (n *Scheduler) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

func (n *Scheduler) set(v bool) {
	n.mu.Lock()
	n.visible = v
	n.mu.Unlock()
}
