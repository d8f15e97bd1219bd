package sim

import (
	"log/slog"

	"cellgrid/internal/core"
	"cellgrid/internal/reconcile"
)

// PositionSource reads back entity translations from the entity store.
type PositionSource interface {
	PositionOf(id core.EntityID) (x, y, z float64, ok bool)
}

// Debugger logs every cell entity's coordinate and translation once every
// Every ticks.
type Debugger struct {
	every   int
	counter int
	src     PositionSource
	log     *slog.Logger
}

// NewDebugger returns a debugger; every <= 0 disables it.
func NewDebugger(every int, src PositionSource, log *slog.Logger) *Debugger {
	if log == nil {
		log = slog.Default()
	}
	return &Debugger{every: every, src: src, log: log.With("component", "debug")}
}

// Observe counts a tick and dumps transforms when the period elapses. It
// returns the number of entities logged.
func (d *Debugger) Observe(rec *reconcile.Reconciler) int {
	if d == nil || d.every <= 0 {
		return 0
	}
	d.counter++
	if d.counter < d.every {
		return 0
	}
	d.counter = 0
	n := 0
	rec.Each(func(c core.Coord, id core.EntityID) {
		x, y, z, ok := d.src.PositionOf(id)
		if !ok {
			d.log.Warn("cell entity has no transform", "cell", c, "entity", id)
			return
		}
		d.log.Debug("cell", "row", c.Row, "col", c.Col, "x", x, "y", y, "z", z)
		n++
	})
	return n
}
