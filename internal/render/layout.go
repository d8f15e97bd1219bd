package render

import (
	"image/color"
	"math"

	"cellgrid/internal/core"
)

var (
	// AliveColor fills live cells.
	AliveColor = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	// DeadColor fills dead cells.
	DeadColor = color.RGBA{R: 40, G: 40, B: 48, A: 255}
)

// cellFill is the share of the spacing a cell square covers.
const cellFill = 0.85

// CellColor returns the fill for a cell.
func CellColor(alive bool) color.RGBA {
	if alive {
		return AliveColor
	}
	return DeadColor
}

// Extent returns the scene-space bounding box of a grid whose cells are
// placed at (row*spacing, col*spacing).
func Extent(s core.Size, spacing float64) (w, h float64) {
	return float64(s.H) * spacing, float64(s.W) * spacing
}

// Fit returns the pixels-per-unit scale that fits the scene extent inside a
// screen of sw by sh pixels.
func Fit(s core.Size, spacing float64, sw, sh int) float64 {
	w, h := Extent(s, spacing)
	if w <= 0 || h <= 0 || sw <= 0 || sh <= 0 {
		return 1
	}
	return math.Min(float64(sw)/w, float64(sh)/h)
}

// CellRect returns the screen rectangle for a cell translated to (x, y).
func CellRect(x, y, spacing, scale float64) (px, py, side float64) {
	side = spacing * scale * cellFill
	return x * scale, y * scale, side
}
