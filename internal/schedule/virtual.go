package schedule

import (
	"container/heap"
	"sync"
	"time"
)

// Virtual is a deterministic Scheduler driven by Advance. Callbacks run
// synchronously on the goroutine calling Advance, in due-time order; ties
// run in scheduling order.
type Virtual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers timerHeap
}

func NewVirtual() *Virtual {
	return &Virtual{}
}

type virtualTimer struct {
	v      *Virtual
	due    time.Duration
	period time.Duration
	seq    uint64
	fn     func()
	index  int
	done   bool
}

func (t *virtualTimer) Cancel() {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()
	t.done = true
	if t.index >= 0 {
		heap.Remove(&t.v.timers, t.index)
	}
}

// Now reports virtual time elapsed since construction.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending reports how many tasks are still scheduled.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

func (v *Virtual) AfterFunc(d time.Duration, fn func()) Handle {
	return v.schedule(d, 0, fn)
}

func (v *Virtual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("schedule: non-positive interval for Every")
	}
	return v.schedule(d, d, fn)
}

func (v *Virtual) schedule(d, period time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	t := &virtualTimer{v: v, due: v.now + d, period: period, seq: v.seq, fn: fn}
	heap.Push(&v.timers, t)
	return t
}

// Advance moves virtual time forward by d, running every callback that
// falls due, including ones scheduled by callbacks during the advance.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now + d
	v.mu.Unlock()

	for {
		v.mu.Lock()
		if len(v.timers) == 0 || v.timers[0].due > target {
			v.now = target
			v.mu.Unlock()
			return
		}
		t := v.timers[0]
		v.now = t.due
		if t.period > 0 {
			v.seq++
			t.seq = v.seq
			t.due += t.period
			heap.Fix(&v.timers, 0)
		} else {
			heap.Pop(&v.timers)
			t.done = true
		}
		fn := t.fn
		v.mu.Unlock()

		fn()
	}
}

type timerHeap []*virtualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].seq < h[j].seq
	}
	return h[i].due < h[j].due
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
