package life

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cellgrid/internal/core"
)

// ErrPatternTooLarge is returned when a pattern does not fit the board.
var ErrPatternTooLarge = errors.New("life: pattern does not fit the grid")

// Pattern is a rectangular block of cells in plaintext (.cells) form.
type Pattern struct {
	Name  string
	Size  core.Size
	Alive []core.Coord
}

// ParsePattern reads the plaintext format: lines starting with '!' are
// comments ("!Name: x" sets the name), '.' is dead and 'O' or '*' alive.
func ParsePattern(r io.Reader) (Pattern, error) {
	var p Pattern
	sc := bufio.NewScanner(r)
	row := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(line, "!") {
			if name, ok := strings.CutPrefix(line, "!Name:"); ok {
				p.Name = strings.TrimSpace(name)
			}
			continue
		}
		for col, ch := range line {
			switch ch {
			case 'O', 'o', '*':
				p.Alive = append(p.Alive, core.Coord{Row: row, Col: col})
			case '.':
			default:
				return Pattern{}, fmt.Errorf("life: pattern line %d: unexpected %q", row+1, ch)
			}
		}
		if len(line) > p.Size.W {
			p.Size.W = len(line)
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return Pattern{}, fmt.Errorf("life: read pattern: %w", err)
	}
	p.Size.H = row
	return p, nil
}

// MustPattern parses a pattern literal and panics on error.
func MustPattern(name, body string) Pattern {
	p, err := ParsePattern(strings.NewReader(body))
	if err != nil {
		panic(err)
	}
	p.Name = name
	return p
}

// Place marks the pattern's live cells on g with its top-left corner at at.
func (p Pattern) Place(g *core.Grid, at core.Coord) error {
	s := g.Size()
	if at.Row < 0 || at.Col < 0 || at.Row+p.Size.H > s.H || at.Col+p.Size.W > s.W {
		return fmt.Errorf("%w: %s is %v, grid is %v at %v", ErrPatternTooLarge, p.Name, p.Size, s, at)
	}
	for _, c := range p.Alive {
		g.Set(core.Coord{Row: at.Row + c.Row, Col: at.Col + c.Col}, true)
	}
	return nil
}

// PlaceCentered places the pattern in the middle of g.
func (p Pattern) PlaceCentered(g *core.Grid) error {
	s := g.Size()
	return p.Place(g, core.Coord{Row: (s.H - p.Size.H) / 2, Col: (s.W - p.Size.W) / 2})
}

var patterns = map[string]Pattern{
	"blinker": MustPattern("blinker", "OOO\n"),
	"block":   MustPattern("block", "OO\nOO\n"),
	"glider":  MustPattern("glider", ".O.\n..O\nOOO\n"),
	"beacon":  MustPattern("beacon", "OO..\nOO..\n..OO\n..OO\n"),
}

// BuiltinPattern returns one of the bundled patterns by name.
func BuiltinPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// Load clears the board and places p in its centre.
func (e *Engine) Load(p Pattern) error {
	e.cur.Clear()
	e.generation = 0
	return p.PlaceCentered(e.cur)
}

// PatternNames lists the bundled patterns in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for n := range patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
