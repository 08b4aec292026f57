package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a grid of Braille runes. Cells are addressed in sub-pixel
// coordinates: a canvas of Width x Height runes holds (Width*2) x
// (Height*4) cells.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	cellW, cellH int
	population   int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.resize(w, h)
	return c
}

// SetSize resizes the canvas to hold a grid of w x h cells and clears it.
func (c *Canvas) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.cellW, c.cellH = w, h
	c.resize((w+1)/2, (h+3)/4)
}

// PutCells draws a row-major w x h snapshot where any non-zero byte is a
// live cell. A snapshot that disagrees with the current size resizes first.
func (c *Canvas) PutCells(w, h int, cells []uint8) {
	if w != c.cellW || h != c.cellH {
		c.SetSize(w, h)
	} else {
		c.Clear()
	}
	for y := 0; y < h; y++ {
		row := y * w
		if row >= len(cells) {
			break
		}
		for x := 0; x < w && row+x < len(cells); x++ {
			if cells[row+x] != 0 {
				c.Set(x, y)
			}
		}
	}
}

// CellSize reports the grid size last passed to SetSize.
func (c *Canvas) CellSize() (w, h int) { return c.cellW, c.cellH }

// Population reports how many cells are lit.
func (c *Canvas) Population() int { return c.population }

func (c *Canvas) resize(w, h int) {
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
}

// Set lights a cell at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	col, row, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	if c.Grid[row][col]&bit == 0 {
		c.population++
	}
	c.Grid[row][col] |= bit
}

// Unset clears a cell
func (c *Canvas) Unset(x, y int) {
	col, row, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	if c.Grid[row][col]&bit != 0 {
		c.population--
	}
	c.Grid[row][col] &^= bit
}

// IsSet reports whether the cell at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	col, row, bit, ok := c.locate(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	c.population = 0
}

func (c *Canvas) locate(x, y int) (col, row int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return col, row, rune(pixelMap[y%4][x%2]), true
}

// Lines returns one string per canvas row.
func (c *Canvas) Lines() []string {
	lines := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		lines[i] = string(row)
	}
	return lines
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
