package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cellgrid/internal/config"
	"cellgrid/internal/ecs"
	"cellgrid/internal/sim"
)

type runOptions struct {
	steps       uint64
	tps         int
	watch       bool
	metricsAddr string
	print       string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tick the simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return opts.run(ctx, root, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().Uint64Var(&opts.steps, "steps", 100, "ticks to run; 0 runs until interrupted")
	cmd.Flags().IntVar(&opts.tps, "tps", -1, "ticks per second; 0 is unpaced, -1 uses the config")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "apply control changes from --config while running")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	cmd.Flags().StringVar(&opts.print, "print", "auto", "print the board each tick: auto, always, never, final")
	return cmd
}

func (o *runOptions) run(ctx context.Context, root *rootOptions, stdout, stderr io.Writer) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}
	log := root.logger(stderr).With("run", uuid.NewString())

	world := ecs.NewWorld(0)
	loop, _, err := sim.Build(cfg, world, log)
	if err != nil {
		return err
	}

	tps := cfg.Sim.TPS
	if o.tps >= 0 {
		tps = o.tps
	}
	live := o.printEachTick(stdout)

	g, ctx := errgroup.WithContext(ctx)
	if o.watch && root.configPath != "" {
		w := config.NewWatcher(root.configPath, loop.Controller(), log)
		g.Go(func() error { return w.Run(ctx) })
	}
	if o.metricsAddr != "" {
		srv := &http.Server{Addr: o.metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	runCtx, cancel := context.WithCancel(ctx)
	g.Go(func() error {
		defer cancel()
		err := loop.Run(runCtx, sim.RunOptions{
			TPS:      tps,
			MaxTicks: o.steps,
			OnTick: func(res sim.TickResult) {
				if live {
					printBoard(stdout, loop, res, true)
				}
			},
		})
		log.Info("stopped", "ticks", loop.Ticks(), "generation", loop.Engine().Generation(), "entities", world.Count())
		if err != nil {
			return err
		}
		if o.print == "final" || (!live && o.print != "never") {
			printBoard(stdout, loop, sim.TickResult{Tick: loop.Ticks(), Generation: loop.Engine().Generation(), Control: loop.Controller().Snapshot()}, false)
		}
		return errDone
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errDone) {
		return err
	}
	return nil
}

// errDone cancels sibling goroutines once the loop finishes.
var errDone = errors.New("run finished")

func (o *runOptions) printEachTick(w io.Writer) bool {
	switch o.print {
	case "always":
		return true
	case "auto":
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	default:
		return false
	}
}

func printBoard(w io.Writer, loop *sim.Loop, res sim.TickResult, clear bool) {
	if clear {
		fmt.Fprint(w, "\x1b[H\x1b[2J")
	}
	fmt.Fprintf(w, "tick %d  generation %d  size %v  running %t  entities %d\n",
		res.Tick, res.Generation, res.Control.Size, res.Control.Running, loop.Reconciler().Len())
	fmt.Fprint(w, loop.Engine().Grid().String())
}
