package ui

import (
	"fmt"

	"cellgrid/internal/core"
)

// Lines flattens a snapshot into a header row per group followed by indented
// "Label: value" rows.
func Lines(s core.ParameterSnapshot) []string {
	var out []string
	for _, g := range s.Groups {
		out = append(out, g.Name)
		for _, p := range g.Params {
			out = append(out, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return out
}
