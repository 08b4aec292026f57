package bridge

import (
	"errors"
	"fmt"
)

// Ordering violations recorded by Monitor.
var (
	// ErrNotLoaded indicates expand, draw or step without a successful load.
	ErrNotLoaded = errors.New("bridge: engine call before a successful load")

	// ErrNotExpanded indicates draw after a load that was not followed by expand.
	ErrNotExpanded = errors.New("bridge: draw before expand")
)

// Violation records one out-of-order engine call.
type Violation struct {
	Call    string
	Wrapped error
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %v", v.Call, v.Wrapped)
}

func (v *Violation) Unwrap() error {
	return v.Wrapped
}
