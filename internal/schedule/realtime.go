package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Realtime schedules on wall-clock timers and delivers each fire through
// post, which must run the function on the loop thread.
type Realtime struct {
	post func(func())
}

// NewRealtime returns a Realtime scheduler. post is required.
func NewRealtime(post func(func())) *Realtime {
	if post == nil {
		panic("schedule: nil post for Realtime")
	}
	return &Realtime{post: post}
}

type realHandle struct {
	cancelled atomic.Bool
	once      sync.Once
	stop      func()
}

func (h *realHandle) Cancel() {
	h.cancelled.Store(true)
	h.once.Do(h.stop)
}

func (h *realHandle) fire(fn func()) func() {
	return func() {
		if h.cancelled.Load() {
			return
		}
		fn()
	}
}

func (r *Realtime) AfterFunc(d time.Duration, fn func()) Handle {
	h := &realHandle{}
	t := time.AfterFunc(d, func() { r.post(h.fire(fn)) })
	h.stop = func() { t.Stop() }
	return h
}

// Every fires fn each d. d must be positive.
func (r *Realtime) Every(d time.Duration, fn func()) Handle {
	h := &realHandle{}
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	h.stop = func() {
		ticker.Stop()
		close(done)
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if h.cancelled.Load() {
					return
				}
				r.post(h.fire(fn))
			}
		}
	}()
	return h
}
