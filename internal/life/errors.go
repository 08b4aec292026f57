package life

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates input with no header and no cells.
	ErrEmpty = errors.New("life: empty pattern")

	// ErrInvalidRule indicates a rule string outside B/S or S/B notation.
	ErrInvalidRule = errors.New("life: invalid rule")

	// ErrTooLarge indicates a grid above the engine's cell limit.
	ErrTooLarge = errors.New("life: pattern too large")
)

// ParseError locates a problem in RLE input. Line and Column are 1-based.
type ParseError struct {
	Line   int
	Column int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s at line %d, column %d", e.Reason, e.Line, e.Column)
	}
	return fmt.Sprintf("%s '%s' at line %d, column %d", e.Reason, e.Token, e.Line, e.Column)
}
