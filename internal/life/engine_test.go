package life

import (
	"math"
	"strings"
	"testing"
)

type frame struct {
	w, h  int
	cells []uint8
	sizes [][2]int
}

func (f *frame) SetSize(w, h int) { f.sizes = append(f.sizes, [2]int{w, h}) }

func (f *frame) PutCells(w, h int, cells []uint8) {
	f.w, f.h = w, h
	f.cells = append(f.cells[:0], cells...)
}

func TestEngineLoadExpandDraw(t *testing.T) {
	e := NewEngine()
	out := e.Load("bo$2bo$3o!")
	if !out.OK {
		t.Fatalf("load failed: %s", out.Message)
	}

	f := &frame{}
	e.Expand(f, 200)
	if len(f.sizes) != 1 || f.sizes[0] != [2]int{403, 403} {
		t.Fatalf("expected surface 403x403, got %v", f.sizes)
	}

	e.Draw(f)
	if f.w != 403 || f.h != 403 {
		t.Errorf("expected frame 403x403, got %dx%d", f.w, f.h)
	}
	if f.cells[200*403+201] != 1 {
		t.Error("expected glider head at (201,200)")
	}
	if e.Population() != 5 || e.Generation() != 0 {
		t.Errorf("unexpected stats: pop=%d gen=%d", e.Population(), e.Generation())
	}
}

func TestEngineStepAdvances(t *testing.T) {
	e := NewEngine()
	e.Load("3o!")
	e.Expand(&frame{}, 2)
	e.Step()
	e.Step()
	e.Step()
	if e.Generation() != 3 {
		t.Errorf("expected generation 3, got %d", e.Generation())
	}
	if e.Population() != 3 {
		t.Errorf("blinker population should stay 3, got %d", e.Population())
	}
}

func TestEngineExpandResetsGeneration(t *testing.T) {
	e := NewEngine()
	e.Load("3o!")
	e.Expand(&frame{}, 2)
	e.Step()
	e.Expand(&frame{}, 4)
	if e.Generation() != 0 {
		t.Errorf("expected generation reset, got %d", e.Generation())
	}
	if g := e.Game(); g.Width() != 11 || g.Height() != 9 {
		t.Errorf("expected 11x9 grid, got %dx%d", g.Width(), g.Height())
	}
}

func TestEngineLoadFailure(t *testing.T) {
	e := NewEngine()
	out := e.Load("not a pattern")
	if out.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out.Message, "unexpected token") {
		t.Errorf("unexpected message %q", out.Message)
	}

	f := &frame{}
	e.Expand(f, 10)
	e.Draw(f)
	e.Step()
	if len(f.sizes) != 0 || f.cells != nil {
		t.Error("engine must stay inert after a failed load")
	}
}

func TestEngineCellLimit(t *testing.T) {
	e := NewEngine(WithMaxCells(100))
	out := e.Load("x = 20, y = 20\no!")
	if out.OK {
		t.Fatal("expected oversize pattern to be rejected")
	}
	if !strings.HasPrefix(out.Message, "life: pattern too large") {
		t.Errorf("unexpected message %q", out.Message)
	}

	out = e.Load("3o!")
	if !out.OK {
		t.Fatalf("load failed: %s", out.Message)
	}
	f := &frame{}
	e.Expand(f, 50)
	// (3+2m)*(1+2m) <= 100 holds up to m=4.
	if e.Margin() != 4 {
		t.Errorf("expected margin reduced to 4, got %d", e.Margin())
	}
	if f.sizes[0] != [2]int{11, 9} {
		t.Errorf("expected 11x9 surface, got %v", f.sizes[0])
	}
}

func TestEngineWithMargin(t *testing.T) {
	e := NewEngine(WithMargin(1))
	e.Load("o!")
	if g := e.Game(); g.Width() != 3 || g.Height() != 3 {
		t.Errorf("expected 3x3 grid from initial margin, got %dx%d", g.Width(), g.Height())
	}
	if e.Pattern() == nil {
		t.Error("expected parsed pattern")
	}
}

func TestEngineHugeMargin(t *testing.T) {
	for _, margin := range []int{math.MaxInt / 2, math.MaxInt/2 - 1, math.MaxInt} {
		e := NewEngine(WithMaxCells(100))
		if out := e.Load("bo$2bo$3o!"); !out.OK {
			t.Fatalf("load failed: %s", out.Message)
		}
		f := &frame{}
		e.Expand(f, margin)
		// (3+2m)^2 <= 100 holds up to m=3.
		if e.Margin() != 3 {
			t.Errorf("margin %d: applied %d, want 3", margin, e.Margin())
		}
		if f.sizes[0] != [2]int{9, 9} {
			t.Errorf("margin %d: surface %v, want 9x9", margin, f.sizes[0])
		}
		e.Draw(f)
		e.Step()
		if e.Population() != 5 {
			t.Errorf("margin %d: population %d, want 5", margin, e.Population())
		}
	}
}

func TestEngineHugeMarginDefaultLimit(t *testing.T) {
	e := NewEngine()
	e.Load("o!")
	e.Expand(&frame{}, math.MaxInt/2-1)
	g := e.Game()
	if int64(g.Width())*int64(g.Height()) > DefaultMaxCells {
		t.Errorf("grid %dx%d exceeds the default limit", g.Width(), g.Height())
	}
}

func TestEngineLoadLongRuns(t *testing.T) {
	e := NewEngine()
	out := e.Load(strings.Repeat("1048576o", 16) + "!")
	if out.OK {
		t.Fatal("expected oversize pattern to be rejected")
	}
	if !strings.HasPrefix(out.Message, "life: pattern too large") {
		t.Errorf("unexpected message %q", out.Message)
	}
}
