package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestVirtualAfterFunc(t *testing.T) {
	v := NewVirtual()
	fired := 0
	v.AfterFunc(time.Second, func() { fired++ })

	v.Advance(999 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early at %v", v.Now())
	}
	v.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected fire at exactly 1s, fired=%d", fired)
	}
	v.Advance(time.Hour)
	if fired != 1 {
		t.Errorf("one-shot fired %d times", fired)
	}
	if v.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", v.Pending())
	}
}

func TestVirtualEvery(t *testing.T) {
	v := NewVirtual()
	ticks := 0
	v.Every(50*time.Millisecond, func() { ticks++ })

	v.Advance(175 * time.Millisecond)
	if ticks != 3 {
		t.Errorf("expected 3 ticks after 175ms, got %d", ticks)
	}
	if v.Now() != 175*time.Millisecond {
		t.Errorf("expected now=175ms, got %v", v.Now())
	}
}

func TestVirtualCancel(t *testing.T) {
	v := NewVirtual()
	ticks := 0
	h := v.Every(10*time.Millisecond, func() { ticks++ })
	v.Advance(30 * time.Millisecond)
	h.Cancel()
	h.Cancel()
	v.Advance(time.Second)
	if ticks != 3 {
		t.Errorf("expected 3 ticks before cancel, got %d", ticks)
	}
}

func TestVirtualCancelFromCallback(t *testing.T) {
	v := NewVirtual()
	ticks := 0
	var h Handle
	h = v.Every(10*time.Millisecond, func() {
		ticks++
		if ticks == 2 {
			h.Cancel()
		}
	})
	v.Advance(time.Second)
	if ticks != 2 {
		t.Errorf("expected loop to stop after 2 ticks, got %d", ticks)
	}
}

func TestVirtualOrderingAndNesting(t *testing.T) {
	v := NewVirtual()
	var order []string
	v.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	v.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "a")
		v.AfterFunc(5*time.Millisecond, func() { order = append(order, "nested") })
	})
	v.AfterFunc(20*time.Millisecond, func() { order = append(order, "c") })

	v.Advance(20 * time.Millisecond)

	want := []string{"a", "nested", "b", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestVirtualEveryRejectsZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	NewVirtual().Every(0, func() {})
}

func TestCancelNil(t *testing.T) {
	Cancel(nil)
	Cancel(Noop)
}
