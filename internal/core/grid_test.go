package core

import (
	"testing"
	"time"
)

func TestNewGridAllDead(t *testing.T) {
	for _, s := range []Size{{1, 1}, {3, 2}, {2, 7}, {25, 25}} {
		g := NewGrid(s.W, s.H)
		if got := g.Size(); got != s {
			t.Fatalf("NewGrid(%d,%d).Size() = %v", s.W, s.H, got)
		}
		if n := g.Alive(); n != 0 {
			t.Fatalf("new %v grid has %d live cells", s, n)
		}
		if len(g.Cells()) != s.Area() {
			t.Fatalf("new %v grid has %d cells, want %d", s, len(g.Cells()), s.Area())
		}
	}
}

func TestGridSetGet(t *testing.T) {
	g := NewGrid(4, 3)
	c := Coord{Row: 2, Col: 3}
	g.Set(c, true)
	if !g.Get(c) {
		t.Fatal("expected cell to be alive after Set")
	}
	if g.Cells()[2*4+3] != true {
		t.Fatal("Set did not store at row*w+col")
	}
	if g.Alive() != 1 {
		t.Fatalf("expected 1 live cell, got %d", g.Alive())
	}
	g.Clear()
	if g.Get(c) {
		t.Fatal("Clear left cell alive")
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestGridInvariantViolationsPanic(t *testing.T) {
	mustPanic(t, "zero width", func() { NewGrid(0, 3) })
	mustPanic(t, "negative height", func() { NewGrid(3, -1) })
	mustPanic(t, "empty size", func() { (&Grid{}).Size() })

	g := NewGrid(2, 2)
	mustPanic(t, "row out of range", func() { g.Get(Coord{Row: 2, Col: 0}) })
	mustPanic(t, "col out of range", func() { g.Set(Coord{Row: 0, Col: 2}, true) })
	mustPanic(t, "negative", func() { g.Get(Coord{Row: -1, Col: 0}) })
}

func TestGridCloneEqual(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(Coord{Row: 1, Col: 1}, true)
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone differs from original")
	}
	c.Set(Coord{Row: 0, Col: 0}, true)
	if g.Equal(c) {
		t.Fatal("clone shares storage with original")
	}
	if g.Equal(NewGrid(3, 2)) {
		t.Fatal("grids of different size compare equal")
	}
}

func TestGridString(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(Coord{Row: 0, Col: 1}, true)
	g.Set(Coord{Row: 1, Col: 2}, true)
	if got, want := g.String(), ".O.\n..O\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestGridMapInsertGet(t *testing.T) {
	m := NewGridMap[int](3, 3)
	m.Insert(Coord{Row: 0, Col: 0}, 1)
	m.Insert(Coord{Row: 2, Col: 2}, 9)
	if got := *m.Get(Coord{Row: 0, Col: 0}); got != 1 {
		t.Fatalf("get (0,0) = %d, want 1", got)
	}
	if got := *m.Get(Coord{Row: 2, Col: 2}); got != 9 {
		t.Fatalf("get (2,2) = %d, want 9", got)
	}
	if got := *m.Get(Coord{Row: 1, Col: 1}); got != 0 {
		t.Fatalf("untouched slot = %d, want zero value", got)
	}
	if m.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", m.Len())
	}
}

func TestGridMapIndexIsBijection(t *testing.T) {
	for _, s := range []Size{{1, 1}, {3, 3}, {5, 2}, {2, 5}, {7, 4}} {
		m := NewGridMap[Coord](s.W, s.H)
		seen := make(map[int]Coord)
		for r := 0; r < s.H; r++ {
			for c := 0; c < s.W; c++ {
				k := Coord{Row: r, Col: c}
				idx := m.Index(k)
				if idx < 0 || idx >= m.Len() {
					t.Fatalf("%v: index %d of %v out of range", s, idx, k)
				}
				if prev, dup := seen[idx]; dup {
					t.Fatalf("%v: %v and %v share slot %d", s, prev, k, idx)
				}
				seen[idx] = k
				m.Insert(k, k)
			}
		}
		for r := 0; r < s.H; r++ {
			for c := 0; c < s.W; c++ {
				k := Coord{Row: r, Col: c}
				if got := *m.Get(k); got != k {
					t.Fatalf("%v: get %v = %v", s, k, got)
				}
			}
		}
	}
}

func TestGridMapInsertReplacesSlot(t *testing.T) {
	m := NewGridMap[string](2, 2)
	c := Coord{Row: 1, Col: 0}
	m.Insert(c, "a")
	m.Insert(c, "b")
	if got := *m.Get(c); got != "b" {
		t.Fatalf("expected replacement, got %q", got)
	}
	if m.Len() != 4 {
		t.Fatalf("insert changed capacity to %d", m.Len())
	}
	*m.Get(c) = "c"
	if got := *m.Get(c); got != "c" {
		t.Fatalf("write through Get pointer lost, got %q", got)
	}
}

func TestGridMapEachRowMajor(t *testing.T) {
	m := NewGridMap[int](3, 2)
	var order []Coord
	m.Each(func(c Coord, _ int) { order = append(order, c) })
	want := []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if len(order) != len(want) {
		t.Fatalf("visited %d slots, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("slot %d visited %v, want %v", i, order[i], want[i])
		}
	}
}

func TestGridMapOutOfBoundsPanics(t *testing.T) {
	m := NewGridMap[int](3, 2)
	mustPanic(t, "row beyond height", func() { m.Get(Coord{Row: 2, Col: 0}) })
	mustPanic(t, "col beyond width", func() { m.Insert(Coord{Row: 0, Col: 3}, 1) })
}

func TestFixedStepPacing(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a step elapsed, should not step")
	}
	now = now.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full step elapsed, should step")
	}
	now = now.Add(10 * time.Second)
	if !fs.ShouldStep() || !fs.ShouldStep() {
		t.Fatal("backlog should allow one catch-up tick")
	}
	if fs.ShouldStep() {
		t.Fatal("backlog should be capped")
	}
}
