package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRealtimeAfterFuncPostsToLoop(t *testing.T) {
	loop := NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	r := NewRealtime(loop.Post)
	done := make(chan struct{})
	r.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}
}

func TestRealtimeEveryCancel(t *testing.T) {
	loop := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	r := NewRealtime(loop.Post)
	var ticks atomic.Int32
	h := r.Every(2*time.Millisecond, func() { ticks.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
	}

	// Cancel on the loop thread so no queued fire can slip past it.
	cancelled := make(chan int32)
	loop.Post(func() {
		h.Cancel()
		cancelled <- ticks.Load()
	})
	at := <-cancelled

	time.Sleep(20 * time.Millisecond)
	if got := ticks.Load(); got != at {
		t.Errorf("ticks advanced after cancel: %d -> %d", at, got)
	}
}

func TestRealtimeCancelBeforeFire(t *testing.T) {
	var posted atomic.Int32
	r := NewRealtime(func(fn func()) {
		posted.Add(1)
		fn()
	})
	var fired atomic.Bool
	h := r.AfterFunc(10*time.Millisecond, func() { fired.Store(true) })
	h.Cancel()
	time.Sleep(30 * time.Millisecond)
	if fired.Load() || posted.Load() != 0 {
		t.Errorf("cancelled timer fired (posted %d)", posted.Load())
	}
}

func TestNewRealtimeRequiresPost(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil post")
		}
	}()
	NewRealtime(nil)
}

func TestLoopPostAfterStop(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()
	cancel()
	if err := <-errc; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	returned := make(chan struct{})
	go func() {
		loop.Post(func() {})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Error("Post blocked after loop stopped")
	}
}
