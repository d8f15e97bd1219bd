package app

import (
	"flag"
	"strconv"
)

// Flags represents the command-line parameters for the GUI.
type Flags struct {
	Config  string
	Width   int
	Height  int
	Rule    string
	Seed    int64
	TPS     int
	Pattern string
	Running bool
	Watch   bool
	Verbose bool

	fs *flag.FlagSet
}

// NewFlags returns Flags populated with sensible defaults.
func NewFlags() *Flags {
	return &Flags{Width: 25, Height: 25, Rule: "uniform", Seed: 42, TPS: 10}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.Config, "config", f.Config, "yaml config file")
	fs.IntVar(&f.Width, "w", f.Width, "grid width in cells")
	fs.IntVar(&f.Height, "h", f.Height, "grid height in cells")
	fs.StringVar(&f.Rule, "rule", f.Rule, "transition rule")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for board reset")
	fs.IntVar(&f.TPS, "tps", f.TPS, "generations per second")
	fs.StringVar(&f.Pattern, "pattern", f.Pattern, "bundled pattern name or .cells file")
	fs.BoolVar(&f.Running, "run", f.Running, "start running instead of paused")
	fs.BoolVar(&f.Watch, "watch", f.Watch, "reload -config on change")
	fs.BoolVar(&f.Verbose, "v", f.Verbose, "debug logging")
}

// Overrides returns the explicitly set flags as config.FromMap keys, so a
// config file's values survive unless a flag overrides them.
func (f *Flags) Overrides() map[string]string {
	out := map[string]string{}
	if f.fs == nil {
		return out
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "w", "h", "rule", "seed", "tps", "pattern":
			out[fl.Name] = fl.Value.String()
		case "run":
			out["running"] = strconv.FormatBool(f.Running)
		}
	})
	return out
}
