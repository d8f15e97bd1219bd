package ecs

import "cellgrid/internal/core"

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

const (
	CTag ComponentType = iota + 1
	CTemplate
	CTransform
)

// Component is implemented by every data struct stored in the world.
type Component interface {
	Type() ComponentType
}

// Tag carries the grid coordinate an entity stands for.
type Tag struct {
	Coord core.Coord
}

func (Tag) Type() ComponentType { return CTag }

// Template names the shared visual an entity is drawn with.
type Template struct {
	Name string
}

func (Template) Type() ComponentType { return CTemplate }

// Transform is an entity's translation in scene space.
type Transform struct {
	X, Y, Z float64
}

func (Transform) Type() ComponentType { return CTransform }
