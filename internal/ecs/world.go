package ecs

import (
	"errors"
	"fmt"

	"cellgrid/internal/core"
)

var (
	// ErrNoEntity is returned when operating on an entity that is not alive.
	ErrNoEntity = errors.New("ecs: no such entity")
	// ErrCapacity is returned when the world is full.
	ErrCapacity = errors.New("ecs: entity capacity reached")
)

// World is the central entity registry and component store.
type World struct {
	nextID     core.EntityID
	capacity   int
	alive      map[core.EntityID]bool
	components map[ComponentType]map[core.EntityID]Component
}

// NewWorld creates an empty World. A capacity of zero means unlimited.
func NewWorld(capacity int) *World {
	return &World{
		nextID:     1,
		capacity:   capacity,
		alive:      make(map[core.EntityID]bool),
		components: make(map[ComponentType]map[core.EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() (core.EntityID, error) {
	if w.capacity > 0 && len(w.alive) >= w.capacity {
		return core.NilEntity, ErrCapacity
	}
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id, nil
}

// DestroyEntity removes the entity and all its components.
func (w *World) DestroyEntity(id core.EntityID) error {
	if !w.alive[id] {
		return fmt.Errorf("%w: %d", ErrNoEntity, id)
	}
	delete(w.alive, id)
	for _, store := range w.components {
		delete(store, id)
	}
	return nil
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id core.EntityID) bool {
	return w.alive[id]
}

// Count returns the number of live entities.
func (w *World) Count() int { return len(w.alive) }

// Add attaches a component to an entity.
func (w *World) Add(id core.EntityID, c Component) {
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[core.EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id core.EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id core.EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// TagOf returns the coordinate tag of id.
func (w *World) TagOf(id core.EntityID) (core.Coord, bool) {
	t, ok := w.Get(id, CTag).(Tag)
	return t.Coord, ok
}

// TransformOf returns the transform of id.
func (w *World) TransformOf(id core.EntityID) (Transform, bool) {
	t, ok := w.Get(id, CTransform).(Transform)
	return t, ok
}

// Create builds a cell entity tagged with tag and drawn with template.
func (w *World) Create(tag core.Coord, template string) (core.EntityID, error) {
	id, err := w.CreateEntity()
	if err != nil {
		return core.NilEntity, err
	}
	w.Add(id, Tag{Coord: tag})
	w.Add(id, Template{Name: template})
	w.Add(id, Transform{})
	return id, nil
}

// Delete destroys id.
func (w *World) Delete(id core.EntityID) error { return w.DestroyEntity(id) }

// SetPosition replaces the translation of id.
func (w *World) SetPosition(id core.EntityID, x, y, z float64) error {
	if !w.alive[id] {
		return fmt.Errorf("%w: %d", ErrNoEntity, id)
	}
	w.Add(id, Transform{X: x, Y: y, Z: z})
	return nil
}

// PositionOf returns the translation of id.
func (w *World) PositionOf(id core.EntityID) (x, y, z float64, ok bool) {
	t, ok := w.TransformOf(id)
	return t.X, t.Y, t.Z, ok
}
