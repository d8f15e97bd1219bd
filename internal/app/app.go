//go:build ebiten

package app

import (
	"fmt"
	"log/slog"

	"cellgrid/internal/core"
	"cellgrid/internal/ecs"
	"cellgrid/internal/render"
	"cellgrid/internal/sim"
	"cellgrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// resizeStep is how many cells +/- add or remove per axis.
const resizeStep = 5

// Game adapts a simulation loop to the ebiten.Game interface. Ebiten's Update
// is the scheduler: each simulation tick runs advance then reconcile.
type Game struct {
	loop    *sim.Loop
	world   *ecs.World
	seeder  sim.Seeder
	step    *core.FixedStep
	painter *render.CellPainter
	hud     *ui.HUD
	log     *slog.Logger

	showHUD  bool
	tickOnce bool
}

// New constructs a Game for the provided loop, stepping at tps.
func New(loop *sim.Loop, world *ecs.World, seeder sim.Seeder, tps int, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	return &Game{
		loop:    loop,
		world:   world,
		seeder:  seeder,
		step:    core.NewFixedStep(tps),
		painter: render.NewCellPainter(),
		hud:     ui.NewHUD(loop),
		log:     log.With("component", "app"),
		showHUD: true,
	}
}

// Reset reseeds the board with the configured seeder.
func (g *Game) Reset() {
	if err := g.seeder.Apply(g.loop.Engine()); err != nil {
		g.log.Warn("reseed failed", "err", err)
	}
	g.tickOnce = false
}

// Update handles input and runs a simulation tick when one is due.
func (g *Game) Update() error {
	ctrl := g.loop.Controller()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.log.Info("running toggled", "running", ctrl.Toggle())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.resize(resizeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.resize(-resizeStep)
	}

	if g.step.ShouldStep() || g.tickOnce {
		if g.tickOnce && !ctrl.Snapshot().Running {
			g.loop.Engine().Step()
		}
		g.tickOnce = false
		if _, err := g.loop.Tick(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	g.hud.Update()
	return nil
}

func (g *Game) resize(delta int) {
	ctrl := g.loop.Controller()
	s := ctrl.Snapshot().Size
	if err := ctrl.Resize(s.W+delta, s.H+delta); err != nil {
		g.log.Warn("resize rejected", "err", err)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	g.painter.Draw(screen, g.world, g.loop.Engine().Grid(), g.loop.Reconciler(), b.Dx(), b.Dy())
	if g.showHUD {
		g.hud.Draw(screen)
	}
}

// Layout uses the window size as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
