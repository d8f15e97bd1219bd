//go:build ebiten

package render

import (
	"image/color"

	"cellgrid/internal/core"
	"cellgrid/internal/ecs"
	"cellgrid/internal/reconcile"

	"github.com/hajimehoshi/ebiten/v2"
)

// CellPainter draws every reconciled cell entity as a square at its transform.
type CellPainter struct {
	pixel *ebiten.Image
}

// NewCellPainter allocates the shared 1x1 source image.
func NewCellPainter() *CellPainter {
	p := &CellPainter{pixel: ebiten.NewImage(1, 1)}
	p.pixel.Fill(color.White)
	return p
}

// Draw renders the entities owned by rec, reading transforms from world and
// liveness from grid. The scene is scaled to fit w by h pixels.
func (p *CellPainter) Draw(dst *ebiten.Image, world *ecs.World, grid *core.Grid, rec *reconcile.Reconciler, w, h int) {
	spacing := rec.Config().Spacing
	scale := Fit(rec.Size(), spacing, w, h)
	op := &ebiten.DrawImageOptions{}
	rec.Each(func(c core.Coord, id core.EntityID) {
		x, y, _, ok := world.PositionOf(id)
		if !ok || !grid.InBounds(c) {
			return
		}
		px, py, side := CellRect(x, y, spacing, scale)
		op.GeoM.Reset()
		op.GeoM.Scale(side, side)
		op.GeoM.Translate(px, py)
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(CellColor(grid.Get(c)))
		dst.DrawImage(p.pixel, op)
	})
}
