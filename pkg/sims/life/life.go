package life

import (
	"fmt"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
	rng "cellgrid/pkg/core"
)

// SeedMode selects how Seed populates the board.
type SeedMode string

const (
	SeedEmpty  SeedMode = "empty"
	SeedRandom SeedMode = "random"
	SeedNoise  SeedMode = "noise"
)

// noiseThreshold is the perlin value above which a cell starts alive.
const noiseThreshold = 0.1

// Engine computes generations of a bounded (non-wrapping) life-like automaton.
type Engine struct {
	rule       Rule
	cur        *core.Grid
	nxt        *core.Grid
	generation uint64
}

// New returns an engine with an all-dead grid of the provided size.
func New(size core.Size, rule Rule) *Engine {
	e := &Engine{rule: rule}
	e.Resize(size)
	return e
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "life/" + e.rule.Name }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return e.cur.Size() }

// Grid exposes the current generation.
func (e *Engine) Grid() *core.Grid { return e.cur }

// Generation returns how many generations have been computed since the last
// resize or reseed.
func (e *Engine) Generation() uint64 { return e.generation }

// Rule returns the active transition rule.
func (e *Engine) Rule() Rule { return e.rule }

// SetRule replaces the transition rule. The board is left untouched.
func (e *Engine) SetRule(r Rule) { e.rule = r }

// Resize replaces the board with an all-dead grid of the given size.
func (e *Engine) Resize(size core.Size) {
	e.cur = core.NewGrid(size.W, size.H)
	e.nxt = core.NewGrid(size.W, size.H)
	e.generation = 0
}

// Reset randomizes the board using the provided seed.
func (e *Engine) Reset(seed int64) {
	src := rng.NewRNG(seed).Source()
	rng.FillBinary(src, e.cur.Cells())
	e.generation = 0
}

// Seed populates the board according to mode.
func (e *Engine) Seed(seed int64, mode SeedMode) error {
	switch mode {
	case SeedEmpty, "":
		e.cur.Clear()
		e.generation = 0
	case SeedRandom:
		e.Reset(seed)
	case SeedNoise:
		s := e.cur.Size()
		rng.FillNoise(seed, e.cur.Cells(), s.W, s.H, noiseThreshold)
		e.generation = 0
	default:
		return fmt.Errorf("life: unknown seed mode %q", mode)
	}
	return nil
}

// Neighbors counts live cells among the eight cells surrounding c. Cells
// beyond the border are not counted.
func (e *Engine) Neighbors(c core.Coord) int {
	return neighbors(e.cur, c)
}

func neighbors(g *core.Grid, c core.Coord) int {
	s := g.Size()
	cells := g.Cells()
	n := 0
	for dr := -1; dr <= 1; dr++ {
		r := c.Row + dr
		if r < 0 || r >= s.H {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			col := c.Col + dc
			if col < 0 || col >= s.W {
				continue
			}
			if cells[r*s.W+col] {
				n++
			}
		}
	}
	return n
}

// Step advances the simulation by one generation.
func (e *Engine) Step() {
	s := e.cur.Size()
	cur := e.cur.Cells()
	nxt := e.nxt.Cells()
	for r := 0; r < s.H; r++ {
		for c := 0; c < s.W; c++ {
			idx := r*s.W + c
			nxt[idx] = e.rule.Next(cur[idx], neighbors(e.cur, core.Coord{Row: r, Col: c}))
		}
	}
	e.cur, e.nxt = e.nxt, e.cur
	e.generation++
}

// Advance runs the per-tick part of the engine: the board follows the size
// requested by ctrl, and one generation is computed when ctrl is running.
// It reports whether a generation was computed.
func (e *Engine) Advance(ctrl control.Control) bool {
	if ctrl.Size != e.cur.Size() {
		e.Resize(ctrl.Size)
	}
	if !ctrl.Running {
		return false
	}
	e.Step()
	return true
}
