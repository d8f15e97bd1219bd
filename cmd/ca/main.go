//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"cellgrid/internal/app"
	"cellgrid/internal/config"
	"cellgrid/internal/ecs"
	"cellgrid/internal/render"
	"cellgrid/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg := config.Default()
	if flags.Config != "" {
		loaded, err := config.Load(flags.Config)
		if err != nil {
			log.Error("load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg = config.FromMap(cfg, flags.Overrides())

	world := ecs.NewWorld(0)
	loop, seeder, err := sim.Build(cfg, world, log)
	if err != nil {
		log.Error("build simulation", "err", err)
		os.Exit(1)
	}

	if flags.Watch && flags.Config != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w := config.NewWatcher(flags.Config, loop.Controller(), log)
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	game := app.New(loop, world, seeder, cfg.Sim.TPS, log)
	ew, eh := render.Extent(loop.Controller().Snapshot().Size, cfg.Display.Spacing)

	ebiten.SetWindowTitle("cellgrid - " + loop.Engine().Name())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(ew*8), int(eh*8))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
