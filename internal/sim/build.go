package sim

import (
	"fmt"
	"log/slog"

	"cellgrid/internal/config"
	"cellgrid/internal/control"
	"cellgrid/internal/reconcile"
	"cellgrid/pkg/sims/life"
)

// Seeder populates a freshly sized board.
type Seeder struct {
	Seed    int64
	Mode    life.SeedMode
	Pattern *life.Pattern
}

// Apply seeds e. A pattern that does not fit leaves the board empty and
// returns the placement error.
func (s Seeder) Apply(e *life.Engine) error {
	if s.Pattern != nil {
		return e.Load(*s.Pattern)
	}
	return e.Seed(s.Seed, s.Mode)
}

// Build assembles a loop from cfg, materializing cell entities into store.
func Build(cfg config.Config, store reconcile.Store, log *slog.Logger) (*Loop, Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Seeder{}, err
	}
	rule, err := cfg.Rule()
	if err != nil {
		return nil, Seeder{}, err
	}
	ctrl, err := control.NewController(cfg.InitialControl(), control.WithMaxSize(cfg.MaxSize()))
	if err != nil {
		return nil, Seeder{}, err
	}

	seeder := Seeder{Seed: cfg.Sim.Seed, Mode: life.SeedMode(cfg.Sim.SeedMode)}
	if cfg.Sim.Pattern != "" {
		p, err := config.LoadPattern(cfg.Sim.Pattern)
		if err != nil {
			return nil, Seeder{}, err
		}
		seeder.Pattern = &p
	}

	engine := life.New(ctrl.Snapshot().Size, rule)
	if err := seeder.Apply(engine); err != nil {
		return nil, Seeder{}, fmt.Errorf("sim: seed: %w", err)
	}

	loop := NewLoop(ctrl, engine, reconcile.New(store, cfg.Display, log), log)
	loop.SetSeeder(&seeder)
	if src, ok := store.(PositionSource); ok && cfg.Sim.DebugEvery > 0 {
		loop.SetDebugger(NewDebugger(cfg.Sim.DebugEvery, src, log))
	}
	return loop, seeder, nil
}
