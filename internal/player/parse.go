package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseMargin converts text input to a margin. Callers keep their previous
// value when it returns an error.
func ParseMargin(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}
	return n, nil
}

// ParseDelay converts a millisecond count to a Duration. Counts that do not
// fit a Duration are rejected.
func ParseDelay(s string) (time.Duration, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 || n > math.MaxInt64/int64(time.Millisecond) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelay, s)
	}
	return time.Duration(n) * time.Millisecond, nil
}
