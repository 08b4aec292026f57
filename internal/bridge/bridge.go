package bridge

// Outcome is the result of a load attempt.
type Outcome struct {
	OK      bool
	Message string
}

// Success is the Outcome engines report for a valid pattern.
func Success() Outcome { return Outcome{OK: true, Message: "ok"} }

// Failure wraps a human-readable validation message.
func Failure(message string) Outcome { return Outcome{OK: false, Message: message} }

type Surface interface {
	SetSize(width, height int)
}

// RenderContext receives one full frame of row-major cell values.
type RenderContext interface {
	PutCells(width, height int, cells []uint8)
}

type Engine interface {
	Load(text string) Outcome
	Expand(s Surface, margin int)
	Draw(rc RenderContext)
	Step()
}

// Stats is implemented by engines that can report progress.
type Stats interface {
	Generation() int
	Population() int
}
