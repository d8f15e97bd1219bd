package core

import "fmt"

// Size describes the dimensions of a simulation grid. W is the number of
// columns and H the number of rows.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are at least one.
func (s Size) Valid() bool { return s.W >= 1 && s.H >= 1 }

// Area returns the number of cells in a grid of this size.
func (s Size) Area() int { return s.W * s.H }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Coord identifies a single cell by zero-based row and column.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Within reports whether c addresses a cell of a grid with the given size.
func (c Coord) Within(s Size) bool {
	return c.Row >= 0 && c.Row < s.H && c.Col >= 0 && c.Col < s.W
}

// EntityID identifies a materialized entity in an entity store.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0
