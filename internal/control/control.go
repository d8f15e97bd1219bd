// Package control holds the shared run/size settings the per-tick systems
// read, and the Controller that is allowed to change them.
package control

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"cellgrid/internal/core"
)

// DefaultSize is the grid a fresh simulation starts with.
var DefaultSize = core.Size{W: 25, H: 25}

// DefaultMaxSize bounds the grid a controller will accept.
var DefaultMaxSize = core.Size{W: 1024, H: 1024}

var (
	// ErrInvalidSize is returned for sizes below 1 or above the controller maximum.
	ErrInvalidSize = errors.New("control: invalid grid size")
	// ErrQueueFull is returned when Enqueue cannot buffer another command.
	ErrQueueFull = errors.New("control: command queue full")
)

// Control is the state every tick reads: whether generations advance and the
// grid size entities are built for. Values are copied into each tick.
type Control struct {
	Running bool
	Size    core.Size
}

// Default returns a stopped control at DefaultSize.
func Default() Control {
	return Control{Running: false, Size: DefaultSize}
}

type sizeRequest struct {
	W int `validate:"gte=1"`
	H int `validate:"gte=1"`
}

var validate = validator.New()

// ValidateSize checks s against the lower bound and limit. A zero limit dimension is unbounded.
func ValidateSize(s core.Size, limit core.Size) error {
	if err := validate.Struct(sizeRequest{W: s.W, H: s.H}); err != nil {
		return fmt.Errorf("%w %v: %v", ErrInvalidSize, s, err)
	}
	if limit.W > 0 && s.W > limit.W || limit.H > 0 && s.H > limit.H {
		return fmt.Errorf("%w %v: exceeds maximum %v", ErrInvalidSize, s, limit)
	}
	return nil
}
