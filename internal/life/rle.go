package life

import (
	"strconv"
	"strings"
	"unicode"
)

const maxRunCount = 1 << 20

// Point is a live cell position relative to the pattern's top-left corner.
type Point struct {
	X, Y int
}

// Pattern is a parsed RLE description.
type Pattern struct {
	Name     string
	Comments []string
	Width    int
	Height   int
	Rule     Rule
	Cells    []Point
}

// ParseRLE parses RLE text with the default cell limit. The bounding box
// is the larger of the header dimensions and the extent of the encoded rows.
func ParseRLE(src string) (*Pattern, error) {
	return ParseRLELimit(src, DefaultMaxCells)
}

// ParseRLELimit is ParseRLE with a bound on the bounding box area. Parsing
// stops with ErrTooLarge as soon as the header or the rows read so far
// exceed maxCells, before any cells are allocated for the overflow.
func ParseRLELimit(src string, maxCells int) (*Pattern, error) {
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	p := &Pattern{Rule: Conway}

	var (
		headerW, headerH int
		sawHeader        bool
		sawBody          bool
		x, y             int
		maxX             int
		count            int
		countLine        int
		countCol         int
		done             bool
	)

	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if done {
			break
		}
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !sawBody && strings.HasPrefix(trimmed, "#") {
			parseComment(p, trimmed)
			continue
		}

		if !sawBody && !sawHeader && isHeader(trimmed) {
			w, h, rule, err := parseHeader(trimmed, lineNo)
			if err != nil {
				return nil, err
			}
			if exceeds(w, h, maxCells) {
				return nil, tooLarge(w, h, maxCells)
			}
			headerW, headerH = w, h
			if rule != nil {
				p.Rule = *rule
			}
			sawHeader = true
			continue
		}

		sawBody = true
		for col, r := range line {
			column := col + 1
			switch {
			case r >= '0' && r <= '9':
				if count == 0 {
					countLine, countCol = lineNo, column
				}
				count = count*10 + int(r-'0')
				if count > maxRunCount {
					return nil, &ParseError{Line: countLine, Column: countCol, Reason: "run count too large"}
				}
			case r == 'b' || r == '.':
				x += runLength(count)
				count = 0
				maxX = max(maxX, x)
				if exceeds(maxX, y+1, maxCells) {
					return nil, tooLarge(maxX, y+1, maxCells)
				}
			case r == 'o' || (r >= 'A' && r <= 'Z'):
				n := runLength(count)
				if exceeds(max(maxX, x+n), y+1, maxCells) {
					return nil, tooLarge(max(maxX, x+n), y+1, maxCells)
				}
				for k := 0; k < n; k++ {
					p.Cells = append(p.Cells, Point{X: x + k, Y: y})
				}
				x += n
				count = 0
				maxX = max(maxX, x)
			case r == '$':
				y += runLength(count)
				x = 0
				count = 0
				if exceeds(max(maxX, 1), y, maxCells) {
					return nil, tooLarge(max(maxX, 1), y, maxCells)
				}
			case r == '!':
				done = true
			case unicode.IsSpace(r):
			default:
				return nil, &ParseError{Line: lineNo, Column: column, Token: string(r), Reason: "unexpected token"}
			}
			if done {
				break
			}
		}
	}

	if count != 0 {
		return nil, &ParseError{Line: countLine, Column: countCol, Reason: "run count without a cell tag"}
	}

	height := y + 1
	if x == 0 && y > 0 {
		height = y
	}
	if !sawBody {
		height = 0
	}

	p.Width = max(maxX, headerW)
	p.Height = max(height, headerH)
	if p.Width == 0 || p.Height == 0 {
		return nil, ErrEmpty
	}
	return p, nil
}

func runLength(count int) int {
	if count == 0 {
		return 1
	}
	return count
}

func isHeader(line string) bool {
	if len(line) < 2 || (line[0] != 'x' && line[0] != 'X') {
		return false
	}
	rest := strings.TrimLeft(line[1:], " \t")
	return strings.HasPrefix(rest, "=")
}

func parseHeader(line string, lineNo int) (int, int, *Rule, error) {
	var (
		w, h int
		rule *Rule
	)
	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return 0, 0, nil, &ParseError{Line: lineNo, Column: strings.Index(line, field) + 1, Token: strings.TrimSpace(field), Reason: "malformed header field"}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "x", "y":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return 0, 0, nil, &ParseError{Line: lineNo, Column: strings.Index(line, value) + 1, Token: value, Reason: "invalid header dimension"}
			}
			if key == "x" {
				w = n
			} else {
				h = n
			}
		case "rule":
			r, err := ParseRule(value)
			if err != nil {
				return 0, 0, nil, &ParseError{Line: lineNo, Column: strings.Index(line, value) + 1, Token: value, Reason: "invalid rule"}
			}
			rule = &r
		}
	}
	return w, h, rule, nil
}

func parseComment(p *Pattern, line string) {
	if len(line) < 2 {
		return
	}
	body := strings.TrimSpace(line[2:])
	switch line[1] {
	case 'N':
		p.Name = body
	case 'C', 'c':
		p.Comments = append(p.Comments, body)
	case 'r':
		if r, err := ParseRule(body); err == nil {
			p.Rule = r
		}
	}
}
