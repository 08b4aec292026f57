package life

// Game is a bounded Life grid. Cells outside the grid are dead.
type Game struct {
	w, h int
	rule Rule
	cur  []uint8
	nxt  []uint8
	gen  int
}

// NewGame returns an empty grid with the provided dimensions.
func NewGame(w, h int, rule Rule) *Game {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	cells := make([]uint8, w*h)
	return &Game{w: w, h: h, rule: rule, cur: cells, nxt: make([]uint8, len(cells))}
}

func (g *Game) Width() int      { return g.w }
func (g *Game) Height() int     { return g.h }
func (g *Game) Generation() int { return g.gen }

// Cells exposes the current grid values (0 dead, 1 alive) in row-major order.
func (g *Game) Cells() []uint8 { return g.cur }

// Set marks (x, y) alive. Out-of-range coordinates are ignored.
func (g *Game) Set(x, y int) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cur[y*g.w+x] = 1
}

// Alive reports whether (x, y) is a live cell.
func (g *Game) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	return g.cur[y*g.w+x] == 1
}

// Population counts live cells.
func (g *Game) Population() int {
	n := 0
	for _, c := range g.cur {
		n += int(c)
	}
	return n
}

// Step advances the grid by one generation.
func (g *Game) Step() {
	w, h := g.w, g.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				row := ny * w
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					neighbors += int(g.cur[row+nx])
				}
			}
			idx := y*w + x
			g.nxt[idx] = 0
			if g.cur[idx] == 1 {
				if g.rule.Survive[neighbors] {
					g.nxt[idx] = 1
				}
			} else if g.rule.Birth[neighbors] {
				g.nxt[idx] = 1
			}
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.gen++
}
