package player_test

import (
	"fmt"

	"github.com/san-kum/lifeplayer/internal/bridge"
	"github.com/san-kum/lifeplayer/internal/ingest"
)

// fakeEngine records every bridge call. Texts listed in invalid fail to
// load with the mapped message.
type fakeEngine struct {
	invalid map[string]string
	calls   []string
	steps   int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{invalid: map[string]string{}}
}

func (e *fakeEngine) Load(text string) bridge.Outcome {
	e.calls = append(e.calls, "load")
	if msg, bad := e.invalid[text]; bad {
		return bridge.Failure(msg)
	}
	e.steps = 0
	return bridge.Success()
}

func (e *fakeEngine) Expand(_ bridge.Surface, margin int) {
	e.calls = append(e.calls, fmt.Sprintf("expand:%d", margin))
}

func (e *fakeEngine) Draw(bridge.RenderContext) { e.calls = append(e.calls, "draw") }

func (e *fakeEngine) Step() {
	e.calls = append(e.calls, "step")
	e.steps++
}

func (e *fakeEngine) Generation() int { return e.steps }
func (e *fakeEngine) Population() int { return 5 + e.steps }

func (e *fakeEngine) count(call string) int {
	n := 0
	for _, c := range e.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (e *fakeEngine) reset() { e.calls = nil }

type pendingRead struct {
	path string
	done func(ingest.Result)
}

// fakeReader holds reads until the test resolves them, standing in for
// the asynchronous file read.
type fakeReader struct {
	pending []pendingRead
}

func (r *fakeReader) Read(path string, done func(ingest.Result)) {
	r.pending = append(r.pending, pendingRead{path: path, done: done})
}

func (r *fakeReader) complete(i int, text string) {
	p := r.pending[i]
	p.done(ingest.Result{Path: p.path, Text: text})
}

func (r *fakeReader) failRead(i int, err error) {
	p := r.pending[i]
	p.done(ingest.Result{Path: p.path, Err: err})
}

type surface struct{}

func (surface) SetSize(int, int)           {}
func (surface) PutCells(int, int, []uint8) {}
