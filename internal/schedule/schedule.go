package schedule

import "time"

// Handle identifies a scheduled task. Cancel is idempotent.
type Handle interface {
	Cancel()
}

type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// Cancel stops h if it is non-nil.
func Cancel(h Handle) {
	if h != nil {
		h.Cancel()
	}
}

type noopHandle struct{}

func (noopHandle) Cancel() {}

// Noop is a Handle that was never scheduled.
var Noop Handle = noopHandle{}
