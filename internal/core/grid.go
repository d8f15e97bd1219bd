package core

import "fmt"

// Grid stores the liveness of every cell in row-major order.
type Grid struct {
	w, h int
	data []bool
}

// NewGrid allocates an all-dead grid with w columns and h rows.
func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", w, h))
	}
	return &Grid{w: w, h: h, data: make([]bool, w*h)}
}

// Size returns the grid dimensions. It panics on a grid without rows.
func (g *Grid) Size() Size {
	if g == nil || g.h == 0 {
		panic("core: size of an empty grid")
	}
	return Size{W: g.w, H: g.h}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []bool { return g.data }

// Index returns the linear slice index for c.
func (g *Grid) Index(c Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("core: coordinate %v outside %dx%d grid", c, g.w, g.h))
	}
	return c.Row*g.w + c.Col
}

// InBounds reports whether c addresses a cell of g.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.h && c.Col >= 0 && c.Col < g.w
}

// Get reports whether the cell at c is alive.
func (g *Grid) Get(c Coord) bool { return g.data[g.Index(c)] }

// Set updates the cell at c.
func (g *Grid) Set(c Coord, alive bool) { g.data[g.Index(c)] = alive }

// Alive returns the number of live cells.
func (g *Grid) Alive() int {
	n := 0
	for _, v := range g.data {
		if v {
			n++
		}
	}
	return n
}

// Clear marks every cell dead.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = false
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{w: g.w, h: g.h, data: make([]bool, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, 'O' for live cells.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.w+1)*g.h)
	for r := 0; r < g.h; r++ {
		for c := 0; c < g.w; c++ {
			if g.data[r*g.w+c] {
				buf = append(buf, 'O')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
