package life

import (
	"fmt"
	"strings"
)

// Rule is an outer-totalistic birth/survival rule.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is B3/S23.
var Conway = Rule{
	Birth:   [9]bool{3: true},
	Survive: [9]bool{2: true, 3: true},
}

// ParseRule accepts "B3/S23" (any case, either order) and the older
// survival-first "23/3" form. An empty string yields Conway.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Conway, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}

	var r Rule
	lower := strings.ToLower(s)
	if strings.ContainsAny(lower, "bs") {
		for _, p := range parts {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
			}
			var dst *[9]bool
			switch p[0] {
			case 'b':
				dst = &r.Birth
			case 's':
				dst = &r.Survive
			default:
				return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
			}
			if err := setDigits(dst, p[1:]); err != nil {
				return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
			}
		}
		return r, nil
	}

	if err := setDigits(&r.Survive, strings.TrimSpace(parts[0])); err != nil {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	if err := setDigits(&r.Birth, strings.TrimSpace(parts[1])); err != nil {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	return r, nil
}

func setDigits(dst *[9]bool, digits string) error {
	for _, c := range digits {
		if c < '0' || c > '8' {
			return fmt.Errorf("neighbour count %q out of range", c)
		}
		dst[c-'0'] = true
	}
	return nil
}

// String renders the rule in B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n, on := range r.Birth {
		if on {
			b.WriteByte(byte('0' + n))
		}
	}
	b.WriteString("/S")
	for n, on := range r.Survive {
		if on {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}
