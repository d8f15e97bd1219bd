package control

import (
	"errors"

	"cellgrid/internal/core"
)

// CommandKind enumerates the changes a Command can request.
type CommandKind int

const (
	CmdSetRunning CommandKind = iota
	CmdToggle
	CmdResize
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetRunning:
		return "set-running"
	case CmdToggle:
		return "toggle"
	case CmdResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Command is a deferred change queued from outside the tick goroutine.
type Command struct {
	Kind    CommandKind
	Running bool
	Size    core.Size
}

// Controller is the only writer of a Control. Its methods must be called from
// the goroutine that runs ticks; other goroutines use Enqueue, and queued
// commands take effect on the next Apply.
type Controller struct {
	state   Control
	max     core.Size
	pending chan Command
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(limit core.Size) Option {
	return func(c *Controller) { c.max = limit }
}

// WithQueue sets the capacity of the command queue.
func WithQueue(n int) Option {
	return func(c *Controller) { c.pending = make(chan Command, n) }
}

// NewController returns a controller seeded with initial. The initial size is
// validated like any other resize.
func NewController(initial Control, opts ...Option) (*Controller, error) {
	c := &Controller{max: DefaultMaxSize, pending: make(chan Command, 16)}
	for _, opt := range opts {
		opt(c)
	}
	if err := ValidateSize(initial.Size, c.max); err != nil {
		return nil, err
	}
	c.state = initial
	return c, nil
}

// Snapshot returns a copy of the current control for one tick.
func (c *Controller) Snapshot() Control { return c.state }

// MaxSize returns the largest accepted grid.
func (c *Controller) MaxSize() core.Size { return c.max }

// SetRunning starts or stops generation stepping.
func (c *Controller) SetRunning(running bool) { c.state.Running = running }

// Toggle flips the running flag and returns the new value.
func (c *Controller) Toggle() bool {
	c.state.Running = !c.state.Running
	return c.state.Running
}

// Resize requests a new grid size. Invalid sizes are rejected and the current
// size is kept.
func (c *Controller) Resize(w, h int) error {
	s := core.Size{W: w, H: h}
	if err := ValidateSize(s, c.max); err != nil {
		return err
	}
	c.state.Size = s
	return nil
}

// Enqueue buffers cmd for the next Apply. It never blocks.
func (c *Controller) Enqueue(cmd Command) error {
	select {
	case c.pending <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Apply executes every queued command in order. Failing commands are skipped
// and their errors joined.
func (c *Controller) Apply() error {
	var errs []error
	for {
		select {
		case cmd := <-c.pending:
			if err := c.exec(cmd); err != nil {
				errs = append(errs, err)
			}
		default:
			return errors.Join(errs...)
		}
	}
}

func (c *Controller) exec(cmd Command) error {
	switch cmd.Kind {
	case CmdSetRunning:
		c.SetRunning(cmd.Running)
	case CmdToggle:
		c.Toggle()
	case CmdResize:
		return c.Resize(cmd.Size.W, cmd.Size.H)
	}
	return nil
}
