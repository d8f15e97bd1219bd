// Package sim drives the per-tick sequence: apply queued control changes,
// advance the automaton, then reconcile entities.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
	"cellgrid/internal/reconcile"
	"cellgrid/pkg/sims/life"
)

// TickResult reports what one tick did.
type TickResult struct {
	Tick       uint64
	Control    control.Control
	Stepped    bool
	Generation uint64
	Reconcile  reconcile.Result
}

// Loop owns the systems of one simulation.
type Loop struct {
	ctrl   *control.Controller
	engine *life.Engine
	rec    *reconcile.Reconciler
	log    *slog.Logger
	debug  *Debugger
	seeder *Seeder
	ticks  uint64
}

// NewLoop wires the systems together. A nil logger uses slog.Default.
func NewLoop(ctrl *control.Controller, engine *life.Engine, rec *reconcile.Reconciler, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{ctrl: ctrl, engine: engine, rec: rec, log: log.With("component", "loop")}
}

// SetDebugger installs d; it is consulted after every tick.
func (l *Loop) SetDebugger(d *Debugger) { l.debug = d }

// SetSeeder makes the loop repopulate the board whenever the control size
// changes. Without a seeder a resized board starts all dead.
func (l *Loop) SetSeeder(s *Seeder) { l.seeder = s }

// Controller returns the loop's controller.
func (l *Loop) Controller() *control.Controller { return l.ctrl }

// Engine returns the automaton.
func (l *Loop) Engine() *life.Engine { return l.engine }

// Reconciler returns the entity reconciler.
func (l *Loop) Reconciler() *reconcile.Reconciler { return l.rec }

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Tick runs one full tick. Rejected control commands are logged and do not
// fail the tick; a reconcile error does.
func (l *Loop) Tick() (TickResult, error) {
	start := time.Now()
	if err := l.ctrl.Apply(); err != nil {
		l.log.Warn("rejected control commands", "err", err)
	}
	snap := l.ctrl.Snapshot()

	res := TickResult{Control: snap}
	if l.seeder != nil && snap.Size.Valid() && snap.Size != l.engine.Size() {
		l.engine.Resize(snap.Size)
		if err := l.seeder.Apply(l.engine); err != nil {
			l.log.Warn("reseed after resize failed", "size", snap.Size, "err", err)
		}
	}
	res.Stepped = l.engine.Advance(snap)
	if res.Stepped {
		generations.Inc()
	}
	res.Generation = l.engine.Generation()

	rr, err := l.rec.Reconcile(snap)
	res.Reconcile = rr
	if err != nil {
		return res, fmt.Errorf("sim: tick %d: %w", l.ticks, err)
	}

	l.ticks++
	res.Tick = l.ticks
	tickDuration.Observe(time.Since(start).Seconds())
	if l.debug != nil {
		l.debug.Observe(l.rec)
	}
	return res, nil
}

// RunOptions configures Run.
type RunOptions struct {
	// TPS is the tick rate; zero runs unpaced.
	TPS int
	// MaxTicks stops the loop after that many ticks; zero runs until ctx is done.
	MaxTicks uint64
	// OnTick is called after every successful tick.
	OnTick func(TickResult)
}

// Run ticks until ctx is done, MaxTicks is reached, or a tick fails.
func (l *Loop) Run(ctx context.Context, opts RunOptions) error {
	var lim *rate.Limiter
	if opts.TPS > 0 {
		lim = rate.NewLimiter(rate.Limit(opts.TPS), 1)
	}
	for n := uint64(0); opts.MaxTicks == 0 || n < opts.MaxTicks; n++ {
		if lim != nil {
			// Wait only fails once ctx is done or its deadline is too
			// close to wait out.
			if err := lim.Wait(ctx); err != nil {
				return nil
			}
		} else if ctx.Err() != nil {
			return nil
		}
		res, err := l.Tick()
		if err != nil {
			return err
		}
		if opts.OnTick != nil {
			opts.OnTick(res)
		}
	}
	return nil
}

// Parameters describes the loop state for hosts.
func (l *Loop) Parameters() core.ParameterSnapshot {
	snap := l.ctrl.Snapshot()
	rule := l.engine.Rule()
	cfg := l.rec.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Control",
			Params: []core.Parameter{
				{Key: "running", Label: "Running", Value: strconv.FormatBool(snap.Running)},
				{Key: "size", Label: "Size", Value: snap.Size.String()},
			},
		},
		{
			Name: "Automaton",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Value: rule.String()},
				{Key: "generation", Label: "Generation", Value: strconv.FormatUint(l.engine.Generation(), 10)},
				{Key: "alive", Label: "Alive", Value: strconv.Itoa(l.engine.Grid().Alive())},
			},
		},
		{
			Name: "Entities",
			Params: []core.Parameter{
				{Key: "entities", Label: "Entities", Value: strconv.Itoa(l.rec.Len())},
				{Key: "spacing", Label: "Spacing", Value: strconv.FormatFloat(cfg.Spacing, 'g', -1, 64)},
				{Key: "depth", Label: "Depth", Value: strconv.FormatFloat(cfg.Depth, 'g', -1, 64)},
			},
		},
	}}
}

// IsFatal reports whether err came from the entity store rather than from a
// bad control value.
func IsFatal(err error) bool {
	return errors.Is(err, reconcile.ErrTeardown) || errors.Is(err, reconcile.ErrRebuild) || errors.Is(err, reconcile.ErrPosition)
}
