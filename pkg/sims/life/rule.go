package life

import (
	"fmt"
	"sort"
)

// Range is an inclusive range of live neighbour counts.
type Range struct {
	Min int
	Max int
}

// Contains reports whether n lies within r.
func (r Range) Contains(n int) bool { return n >= r.Min && n <= r.Max }

func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Rule decides the next state of a cell from its current state and live
// neighbour count.
type Rule struct {
	Name    string
	Survive Range
	Birth   Range
}

// Next returns the state of a cell in the following generation.
func (r Rule) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survive.Contains(neighbors)
	}
	return r.Birth.Contains(neighbors)
}

// Uniform reports whether the rule ignores the current cell state.
func (r Rule) Uniform() bool { return r.Survive == r.Birth }

func (r Rule) String() string {
	return fmt.Sprintf("%s (B%s/S%s)", r.Name, r.Birth, r.Survive)
}

var (
	// UniformRule makes a cell alive when it has more than one and at most
	// four live neighbours, whatever its current state.
	UniformRule = Rule{Name: "uniform", Survive: Range{Min: 2, Max: 4}, Birth: Range{Min: 2, Max: 4}}

	// ConwayRule is the classic B3/S23 Game of Life.
	ConwayRule = Rule{Name: "conway", Survive: Range{Min: 2, Max: 3}, Birth: Range{Min: 3, Max: 3}}
)

// DefaultRule is used when no rule is configured.
var DefaultRule = UniformRule

var rules = map[string]Rule{}

// Register adds a rule under its name.
func Register(r Rule) {
	if r.Name == "" {
		return
	}
	rules[r.Name] = r
}

// Lookup returns the rule registered under name.
func Lookup(name string) (Rule, bool) {
	r, ok := rules[name]
	return r, ok
}

// Rules returns the registered rules sorted by name.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func init() {
	Register(UniformRule)
	Register(ConwayRule)
}
