package schedule

import "context"

// Loop is a serial dispatcher: functions passed to Post run one at a time
// on the goroutine executing Run.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{queue: make(chan func(), buffer), done: make(chan struct{})}
}

// Post enqueues fn. It drops fn once Run has returned.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Run executes posted functions until ctx is cancelled. Call it once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}
