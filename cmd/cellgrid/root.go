package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"cellgrid/internal/config"
	"cellgrid/pkg/sims/life"
)

type rootOptions struct {
	configPath string
	overrides  map[string]string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cellgrid",
		Short:         "Headless cellular automaton with per-cell entity reconciliation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "yaml config file")
	cmd.PersistentFlags().StringToStringVar(&opts.overrides, "set", nil, "config override key=value (w, h, running, rule, seed, seed_mode, pattern, tps, spacing, depth)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newRunCmd(opts), newRulesCmd(), newPatternsCmd(), newConfigCmd(opts))
	return cmd
}

func (o *rootOptions) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg = config.FromMap(cfg, o.overrides)
	return cfg, cfg.Validate()
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List transition rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range life.Rules() {
				marker := " "
				if r.Name == life.DefaultRule.Name {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, r)
			}
			return nil
		},
	}
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List bundled patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range life.PatternNames() {
				p, _ := life.BuiltinPattern(n)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", n, p.Size)
			}
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
