// Package reconcile keeps one entity per grid cell in an external entity
// store, rebuilding the whole set whenever the requested grid size changes.
package reconcile

import (
	"errors"
	"fmt"
	"log/slog"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
)

var (
	// ErrTeardown wraps failures deleting the previous entity set.
	ErrTeardown = errors.New("reconcile: teardown failed")
	// ErrRebuild wraps failures creating the new entity set.
	ErrRebuild = errors.New("reconcile: rebuild failed")
	// ErrPosition wraps failures updating entity transforms.
	ErrPosition = errors.New("reconcile: position update failed")
)

// Store is the entity store the reconciler materializes cells into. All calls
// are synchronous and must report failure through the returned error.
type Store interface {
	Create(tag core.Coord, template string) (core.EntityID, error)
	Delete(id core.EntityID) error
	SetPosition(id core.EntityID, x, y, z float64) error
}

// Config controls entity placement.
type Config struct {
	// Spacing is the distance between adjacent cells.
	Spacing float64 `yaml:"spacing" validate:"gt=0"`
	// Depth is the z translation shared by every cell.
	Depth float64 `yaml:"depth"`
	// Template names the visual every cell entity is built from.
	Template string `yaml:"template" validate:"required"`
}

// DefaultConfig returns the standard placement settings.
func DefaultConfig() Config {
	return Config{Spacing: 3, Depth: -50, Template: "cell"}
}

// Result summarizes one Reconcile call.
type Result struct {
	Rebuilt bool
	Deleted int
	Created int
}

// Reconciler owns the entities it created and the size they were built for.
type Reconciler struct {
	cfg      Config
	store    Store
	log      *slog.Logger
	built    core.Size
	entities *core.GridMap[core.EntityID]
	count    int
	// stale holds entities whose Delete failed. They are still owned and
	// are deleted before anything new is created.
	stale []staleEntity
}

type staleEntity struct {
	tag core.Coord
	id  core.EntityID
}

// New returns a reconciler with no materialized entities. A nil logger uses
// slog.Default.
func New(store Store, cfg Config, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{
		cfg:      cfg,
		store:    store,
		log:      log.With("component", "reconcile"),
		entities: core.NewGridMap[core.EntityID](0, 0),
	}
}

// Config returns the placement settings.
func (r *Reconciler) Config() Config { return r.cfg }

// Size returns the grid size of the materialized set. It is zero before the
// first successful rebuild and after a failed one.
func (r *Reconciler) Size() core.Size { return r.built }

// Len returns the number of entities currently owned, including those a
// failed teardown or rollback could not delete yet.
func (r *Reconciler) Len() int { return r.count + len(r.stale) }

// Stale returns the number of owned entities still awaiting deletion.
func (r *Reconciler) Stale() int { return len(r.stale) }

// EntityAt returns the entity tagged with c.
func (r *Reconciler) EntityAt(c core.Coord) (core.EntityID, bool) {
	if !c.Within(r.built) {
		return core.NilEntity, false
	}
	id := *r.entities.Get(c)
	return id, id != core.NilEntity
}

// Each calls fn for every owned entity in row-major order.
func (r *Reconciler) Each(fn func(core.Coord, core.EntityID)) {
	r.entities.Each(func(c core.Coord, id core.EntityID) {
		if id != core.NilEntity {
			fn(c, id)
		}
	})
}

// Position returns where the entity tagged with c is placed.
func (r *Reconciler) Position(c core.Coord) (x, y, z float64) {
	return float64(c.Row) * r.cfg.Spacing, float64(c.Col) * r.cfg.Spacing, r.cfg.Depth
}

// Reconcile makes the entity set match ctrl.Size and then positions every
// entity from its coordinate. With an unchanged size no entity is created or
// deleted.
func (r *Reconciler) Reconcile(ctrl control.Control) (Result, error) {
	var res Result
	if !ctrl.Size.Valid() {
		return res, fmt.Errorf("reconcile: %w %v", control.ErrInvalidSize, ctrl.Size)
	}
	if ctrl.Size != r.built {
		deleted, created, err := r.rebuild(ctrl.Size)
		res = Result{Rebuilt: err == nil, Deleted: deleted, Created: created}
		if err != nil {
			return res, err
		}
	}
	if err := r.place(); err != nil {
		return res, err
	}
	return res, nil
}

// rebuild tears down every owned entity and creates one per cell of size.
// On failure the reconciler's size is zero and it owns only entities it could
// not delete, so the next call starts over with those.
func (r *Reconciler) rebuild(size core.Size) (deleted, created int, err error) {
	prev := r.built
	deleted, err = r.teardown()
	if err != nil {
		return deleted, 0, err
	}

	next := core.NewGridMap[core.EntityID](size.W, size.H)
	for row := 0; row < size.H; row++ {
		for col := 0; col < size.W; col++ {
			c := core.Coord{Row: row, Col: col}
			id, cerr := r.store.Create(c, r.cfg.Template)
			if cerr != nil {
				rollback := r.discard(next)
				entitiesCreated.Add(float64(created))
				return deleted, created, fmt.Errorf("%w: create %v: %w", ErrRebuild, c, errors.Join(cerr, rollback))
			}
			next.Insert(c, id)
			created++
		}
	}
	r.entities = next
	r.count = created
	r.built = size

	rebuilds.Inc()
	entitiesCreated.Add(float64(created))
	entitiesLive.Set(float64(created))
	r.log.Info("rebuilt cell entities", "from", prev, "to", size, "deleted", deleted, "created", created)
	return deleted, created, nil
}

// teardown deletes every owned entity, stale ones included. Deletion
// continues past failures; entities that could not be deleted stay stale and
// every failure is reported.
func (r *Reconciler) teardown() (int, error) {
	r.Each(func(c core.Coord, id core.EntityID) {
		r.stale = append(r.stale, staleEntity{tag: c, id: id})
	})
	r.entities = core.NewGridMap[core.EntityID](0, 0)
	r.count = 0
	r.built = core.Size{}

	var errs []error
	deleted := 0
	kept := r.stale[:0]
	for _, e := range r.stale {
		if err := r.store.Delete(e.id); err != nil {
			errs = append(errs, fmt.Errorf("delete %v: %w", e.tag, err))
			kept = append(kept, e)
			continue
		}
		deleted++
	}
	r.stale = kept
	entitiesDeleted.Add(float64(deleted))
	entitiesLive.Set(float64(len(r.stale)))
	if len(errs) > 0 {
		r.log.Warn("teardown incomplete", "deleted", deleted, "stale", len(r.stale))
		return deleted, fmt.Errorf("%w: %w", ErrTeardown, errors.Join(errs...))
	}
	return deleted, nil
}

// discard deletes the partially built set m. Entities it cannot delete are
// kept as stale.
func (r *Reconciler) discard(m *core.GridMap[core.EntityID]) error {
	var errs []error
	n := 0
	m.Each(func(c core.Coord, id core.EntityID) {
		if id == core.NilEntity {
			return
		}
		if err := r.store.Delete(id); err != nil {
			errs = append(errs, fmt.Errorf("rollback %v: %w", c, err))
			r.stale = append(r.stale, staleEntity{tag: c, id: id})
			return
		}
		n++
	})
	entitiesDeleted.Add(float64(n))
	entitiesLive.Set(float64(len(r.stale)))
	r.log.Warn("rolled back partial rebuild", "deleted", n, "failed", len(errs))
	return errors.Join(errs...)
}

func (r *Reconciler) place() error {
	var err error
	r.Each(func(c core.Coord, id core.EntityID) {
		if err != nil {
			return
		}
		x, y, z := r.Position(c)
		if perr := r.store.SetPosition(id, x, y, z); perr != nil {
			err = fmt.Errorf("%w: %v: %w", ErrPosition, c, perr)
		}
	})
	return err
}
