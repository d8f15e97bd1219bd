//go:build ebiten

package ui

import (
	"image/color"

	"cellgrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 8
	hudLineHeight = 16
)

// HUD renders the loop parameters in the top-left corner.
type HUD struct {
	src   core.ParameterProvider
	lines []string
	bg    *ebiten.Image
}

// NewHUD constructs a HUD reading from src.
func NewHUD(src core.ParameterProvider) *HUD {
	h := &HUD{src: src, bg: ebiten.NewImage(1, 1)}
	h.bg.Fill(color.RGBA{A: 180})
	return h
}

// Update refreshes the cached text.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	h.lines = Lines(h.src.Parameters())
}

// Draw paints the text over dst.
func (h *HUD) Draw(dst *ebiten.Image) {
	if h == nil || len(h.lines) == 0 {
		return
	}
	width := 0
	for _, l := range h.lines {
		if n := len(l) * 7; n > width {
			width = n
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*hudPadding), float64(len(h.lines)*hudLineHeight+hudPadding))
	dst.DrawImage(h.bg, op)
	for i, l := range h.lines {
		text.Draw(dst, l, basicfont.Face7x13, hudPadding, hudPadding+(i+1)*hudLineHeight-4, color.White)
	}
}
