// Package config loads cellgrid settings from yaml files and flag-style
// key/value overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
	"cellgrid/internal/reconcile"
	"cellgrid/pkg/sims/life"
)

// ErrUnknownRule is returned when the configured rule is not registered.
var ErrUnknownRule = errors.New("config: unknown rule")

// Config is the full application configuration.
type Config struct {
	Control ControlConfig    `yaml:"control"`
	Display reconcile.Config `yaml:"display"`
	Sim     SimConfig        `yaml:"sim"`
}

// ControlConfig seeds the simulation control.
type ControlConfig struct {
	Width     int  `yaml:"width" validate:"gte=1,ltefield=MaxWidth"`
	Height    int  `yaml:"height" validate:"gte=1,ltefield=MaxHeight"`
	Running   bool `yaml:"running"`
	MaxWidth  int  `yaml:"max_width" validate:"gte=1"`
	MaxHeight int  `yaml:"max_height" validate:"gte=1"`
}

// SimConfig controls the automaton and the tick loop.
type SimConfig struct {
	Rule     string `yaml:"rule" validate:"required"`
	Seed     int64  `yaml:"seed"`
	SeedMode string `yaml:"seed_mode" validate:"omitempty,oneof=empty random noise"`
	// Pattern names a bundled pattern or a path to a plaintext .cells file.
	// When set it replaces SeedMode.
	Pattern string `yaml:"pattern"`
	TPS     int    `yaml:"tps" validate:"gte=1,lte=1000"`
	// DebugEvery logs every entity transform each N ticks; zero disables.
	DebugEvery int `yaml:"debug_every" validate:"gte=0"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Control: ControlConfig{
			Width:     control.DefaultSize.W,
			Height:    control.DefaultSize.H,
			MaxWidth:  control.DefaultMaxSize.W,
			MaxHeight: control.DefaultMaxSize.H,
		},
		Display: reconcile.DefaultConfig(),
		Sim: SimConfig{
			Rule:     life.DefaultRule.Name,
			Seed:     42,
			SeedMode: string(life.SeedRandom),
			TPS:      10,
		},
	}
}

var validate = validator.New()

// Validate checks field bounds and that the rule is registered.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, ok := life.Lookup(c.Sim.Rule); !ok {
		return fmt.Errorf("%w %q", ErrUnknownRule, c.Sim.Rule)
	}
	return nil
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Marshal encodes c as yaml.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// InitialControl returns the control the simulation starts with.
func (c Config) InitialControl() control.Control {
	return control.Control{
		Running: c.Control.Running,
		Size:    core.Size{W: c.Control.Width, H: c.Control.Height},
	}
}

// MaxSize returns the largest grid a controller should accept.
func (c Config) MaxSize() core.Size {
	return core.Size{W: c.Control.MaxWidth, H: c.Control.MaxHeight}
}

// Rule resolves the configured rule.
func (c Config) Rule() (life.Rule, error) {
	r, ok := life.Lookup(c.Sim.Rule)
	if !ok {
		return life.Rule{}, fmt.Errorf("%w %q", ErrUnknownRule, c.Sim.Rule)
	}
	return r, nil
}

// FromMap overlays flag-style key/value pairs on c. Unparseable or out of
// range values are ignored.
func FromMap(c Config, kv map[string]string) Config {
	if kv == nil {
		return c
	}
	if v, ok := kv["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Control.Width = parsed
		}
	}
	if v, ok := kv["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Control.Height = parsed
		}
	}
	if v, ok := kv["running"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Control.Running = parsed
		}
	}
	if v, ok := kv["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Sim.Seed = parsed
		}
	}
	if v, ok := kv["rule"]; ok {
		if _, known := life.Lookup(v); known {
			c.Sim.Rule = v
		}
	}
	if v, ok := kv["seed_mode"]; ok {
		c.Sim.SeedMode = v
	}
	if v, ok := kv["pattern"]; ok {
		c.Sim.Pattern = v
	}
	if v, ok := kv["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Sim.TPS = parsed
		}
	}
	if v, ok := kv["spacing"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Display.Spacing = parsed
		}
	}
	if v, ok := kv["depth"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Display.Depth = parsed
		}
	}
	return c
}

// LoadPattern resolves name as a bundled pattern first, then as a file path.
func LoadPattern(name string) (life.Pattern, error) {
	if p, ok := life.BuiltinPattern(name); ok {
		return p, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return life.Pattern{}, fmt.Errorf("config: open pattern: %w", err)
	}
	defer f.Close()
	p, err := life.ParsePattern(f)
	if err != nil {
		return life.Pattern{}, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
