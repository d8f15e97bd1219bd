package core

import "fmt"

// GridMap associates a value with every cell of a fixed-size grid. Slots
// start at the zero value of V.
type GridMap[V any] struct {
	w, h    int
	storage []V
}

// NewGridMap allocates w*h zero-valued slots.
func NewGridMap[V any](w, h int) *GridMap[V] {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("core: invalid grid map size %dx%d", w, h))
	}
	return &GridMap[V]{w: w, h: h, storage: make([]V, w*h)}
}

// Size returns the dimensions the map was built for.
func (m *GridMap[V]) Size() Size { return Size{W: m.w, H: m.h} }

// Len returns the number of slots.
func (m *GridMap[V]) Len() int { return len(m.storage) }

// Index maps c to its slot, row-major.
func (m *GridMap[V]) Index(c Coord) int {
	if c.Row < 0 || c.Row >= m.h || c.Col < 0 || c.Col >= m.w {
		panic(fmt.Sprintf("core: coordinate %v outside %dx%d grid map", c, m.w, m.h))
	}
	return c.Row*m.w + c.Col
}

// Insert stores v at c, replacing whatever was there.
func (m *GridMap[V]) Insert(c Coord, v V) { m.storage[m.Index(c)] = v }

// Get returns a pointer to the slot at c.
func (m *GridMap[V]) Get(c Coord) *V { return &m.storage[m.Index(c)] }

// Each calls fn for every slot in row-major order.
func (m *GridMap[V]) Each(fn func(Coord, V)) {
	for i, v := range m.storage {
		fn(Coord{Row: i / m.w, Col: i % m.w}, v)
	}
}
