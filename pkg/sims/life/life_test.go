package life

import (
	"errors"
	"strings"
	"testing"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
)

func set(e *Engine, cells ...core.Coord) {
	for _, c := range cells {
		e.Grid().Set(c, true)
	}
}

func expectAlive(t *testing.T, e *Engine, alive map[core.Coord]bool, when string) {
	t.Helper()
	s := e.Size()
	for r := 0; r < s.H; r++ {
		for c := 0; c < s.W; c++ {
			k := core.Coord{Row: r, Col: c}
			if got := e.Grid().Get(k); got != alive[k] {
				t.Fatalf("%s: cell %v alive=%v, expected %v\n%s", when, k, got, alive[k], e.Grid())
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	life := New(core.Size{W: 5, H: 5}, ConwayRule)
	set(life, core.Coord{Row: 1, Col: 2}, core.Coord{Row: 2, Col: 2}, core.Coord{Row: 3, Col: 2})

	life.Step()
	expectAlive(t, life, map[core.Coord]bool{
		{Row: 2, Col: 1}: true,
		{Row: 2, Col: 2}: true,
		{Row: 2, Col: 3}: true,
	}, "after first step")

	life.Step()
	expectAlive(t, life, map[core.Coord]bool{
		{Row: 1, Col: 2}: true,
		{Row: 2, Col: 2}: true,
		{Row: 3, Col: 2}: true,
	}, "after second step")

	if life.Generation() != 2 {
		t.Fatalf("expected generation 2, got %d", life.Generation())
	}
}

func TestUniformRuleLoneCenterDies(t *testing.T) {
	life := New(core.Size{W: 3, H: 3}, UniformRule)
	set(life, core.Coord{Row: 1, Col: 1})

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			k := core.Coord{Row: r, Col: c}
			want := 1
			if k == (core.Coord{Row: 1, Col: 1}) {
				want = 0
			}
			if n := life.Neighbors(k); n != want {
				t.Fatalf("neighbors of %v = %d, want %d", k, n, want)
			}
		}
	}

	life.Step()
	if n := life.Grid().Alive(); n != 0 {
		t.Fatalf("expected an entirely dead grid, %d cells alive\n%s", n, life.Grid())
	}
}

func TestSingleCellGridAlwaysDies(t *testing.T) {
	for _, rule := range []Rule{UniformRule, ConwayRule, {Name: "any", Survive: Range{0, 8}, Birth: Range{1, 8}}} {
		life := New(core.Size{W: 1, H: 1}, rule)
		set(life, core.Coord{})
		if n := life.Neighbors(core.Coord{}); n != 0 {
			t.Fatalf("%s: 1x1 grid counted %d neighbors", rule.Name, n)
		}
		life.Step()
		if rule.Name != "any" && life.Grid().Get(core.Coord{}) {
			t.Fatalf("%s: lone cell survived", rule.Name)
		}
	}
}

func TestNeighborsClipAtBorders(t *testing.T) {
	life := New(core.Size{W: 3, H: 3}, UniformRule)
	for i := range life.Grid().Cells() {
		life.Grid().Cells()[i] = true
	}
	cases := map[core.Coord]int{
		{Row: 0, Col: 0}: 3,
		{Row: 0, Col: 2}: 3,
		{Row: 2, Col: 0}: 3,
		{Row: 2, Col: 2}: 3,
		{Row: 0, Col: 1}: 5,
		{Row: 1, Col: 0}: 5,
		{Row: 1, Col: 1}: 8,
	}
	for c, want := range cases {
		if got := life.Neighbors(c); got != want {
			t.Fatalf("neighbors of %v = %d, want %d", c, got, want)
		}
	}

	// Opposite edges must not see each other.
	wide := New(core.Size{W: 5, H: 1}, UniformRule)
	set(wide, core.Coord{Row: 0, Col: 4})
	if n := wide.Neighbors(core.Coord{Row: 0, Col: 0}); n != 0 {
		t.Fatalf("left edge counted %d neighbors across the border", n)
	}
}

func TestNonSquareGridStep(t *testing.T) {
	// 6 columns, 2 rows: a horizontal pair gives each neighbour below it
	// two live neighbours.
	life := New(core.Size{W: 6, H: 2}, UniformRule)
	set(life, core.Coord{Row: 0, Col: 4}, core.Coord{Row: 0, Col: 5})
	life.Step()
	expectAlive(t, life, map[core.Coord]bool{
		{Row: 1, Col: 4}: true,
		{Row: 1, Col: 5}: true,
	}, "after step")
}

func TestUniformAndConwayDiverge(t *testing.T) {
	block := []core.Coord{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}

	conway := New(core.Size{W: 4, H: 4}, ConwayRule)
	set(conway, block...)
	conway.Step()
	want := map[core.Coord]bool{}
	for _, c := range block {
		want[c] = true
	}
	expectAlive(t, conway, want, "conway block")

	uniform := New(core.Size{W: 4, H: 4}, UniformRule)
	set(uniform, block...)
	uniform.Step()
	want = map[core.Coord]bool{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			want[core.Coord{Row: r, Col: c}] = true
		}
	}
	for _, corner := range []core.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 0}, {Row: 3, Col: 3}} {
		delete(want, corner)
	}
	expectAlive(t, uniform, want, "uniform block")
}

func TestRuleNext(t *testing.T) {
	for n := 0; n <= 8; n++ {
		want := n > 1 && n <= 4
		if got := UniformRule.Next(true, n); got != want {
			t.Fatalf("uniform alive n=%d: got %v want %v", n, got, want)
		}
		if got := UniformRule.Next(false, n); got != want {
			t.Fatalf("uniform dead n=%d: got %v want %v", n, got, want)
		}
		if got := ConwayRule.Next(true, n); got != (n == 2 || n == 3) {
			t.Fatalf("conway survive n=%d: got %v", n, got)
		}
		if got := ConwayRule.Next(false, n); got != (n == 3) {
			t.Fatalf("conway birth n=%d: got %v", n, got)
		}
	}
	if !UniformRule.Uniform() || ConwayRule.Uniform() {
		t.Fatal("Uniform() misreports rule conditionality")
	}
}

func TestRegistry(t *testing.T) {
	if _, ok := Lookup("uniform"); !ok {
		t.Fatal("uniform rule not registered")
	}
	if _, ok := Lookup("conway"); !ok {
		t.Fatal("conway rule not registered")
	}
	rules := Rules()
	for i := 1; i < len(rules); i++ {
		if rules[i-1].Name > rules[i].Name {
			t.Fatal("Rules() not sorted")
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	a := New(core.Size{W: 16, H: 12}, UniformRule)
	a.Reset(7)
	b := New(core.Size{W: 16, H: 12}, UniformRule)
	b.Reset(7)
	if !a.Grid().Equal(b.Grid()) {
		t.Fatal("Reset with equal seeds produced different boards")
	}
	for i := 0; i < 5; i++ {
		a.Step()
		b.Step()
		if !a.Grid().Equal(b.Grid()) {
			t.Fatalf("generation %d differs between identical runs", i+1)
		}
	}
}

func TestAdvanceGatedAndResized(t *testing.T) {
	life := New(core.Size{W: 3, H: 3}, UniformRule)
	set(life, core.Coord{Row: 1, Col: 1})

	ctrl := control.Control{Running: false, Size: core.Size{W: 3, H: 3}}
	if life.Advance(ctrl) {
		t.Fatal("Advance stepped while not running")
	}
	if !life.Grid().Get(core.Coord{Row: 1, Col: 1}) || life.Generation() != 0 {
		t.Fatal("paused Advance changed the board")
	}

	ctrl.Running = true
	if !life.Advance(ctrl) {
		t.Fatal("Advance did not step while running")
	}
	if life.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", life.Generation())
	}

	ctrl = control.Control{Running: false, Size: core.Size{W: 7, H: 4}}
	life.Advance(ctrl)
	if got := life.Size(); got != ctrl.Size {
		t.Fatalf("Advance did not follow control size, got %v", got)
	}
	if life.Grid().Alive() != 0 || life.Generation() != 0 {
		t.Fatal("resized board should start all dead at generation 0")
	}
}

func TestSeedModes(t *testing.T) {
	life := New(core.Size{W: 32, H: 32}, UniformRule)
	if err := life.Seed(3, SeedNoise); err != nil {
		t.Fatal(err)
	}
	first := life.Grid().Clone()
	if err := life.Seed(3, SeedNoise); err != nil {
		t.Fatal(err)
	}
	if !first.Equal(life.Grid()) {
		t.Fatal("noise seeding not deterministic")
	}
	if err := life.Seed(0, SeedEmpty); err != nil {
		t.Fatal(err)
	}
	if life.Grid().Alive() != 0 {
		t.Fatal("empty seed left live cells")
	}
	if err := life.Seed(0, "bogus"); err == nil {
		t.Fatal("expected error for unknown seed mode")
	}
}

func TestParsePattern(t *testing.T) {
	src := "!Name: Glider\n!comment\n.O.\n..O\nOOO\n"
	p, err := ParsePattern(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Glider" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.Size != (core.Size{W: 3, H: 3}) {
		t.Fatalf("size = %v", p.Size)
	}
	if len(p.Alive) != 5 {
		t.Fatalf("expected 5 live cells, got %d", len(p.Alive))
	}

	if _, err := ParsePattern(strings.NewReader("O?O\n")); err == nil {
		t.Fatal("expected error for unknown cell character")
	}
}

func TestLoadPatternCentered(t *testing.T) {
	life := New(core.Size{W: 5, H: 5}, ConwayRule)
	p, ok := BuiltinPattern("blinker")
	if !ok {
		t.Fatal("blinker not bundled")
	}
	if err := life.Load(p); err != nil {
		t.Fatal(err)
	}
	expectAlive(t, life, map[core.Coord]bool{
		{Row: 2, Col: 1}: true,
		{Row: 2, Col: 2}: true,
		{Row: 2, Col: 3}: true,
	}, "after load")

	small := New(core.Size{W: 2, H: 2}, ConwayRule)
	if err := small.Load(p); !errors.Is(err, ErrPatternTooLarge) {
		t.Fatalf("expected ErrPatternTooLarge, got %v", err)
	}
}
