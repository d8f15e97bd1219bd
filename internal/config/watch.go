package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Enqueuer accepts control commands from a foreign goroutine.
type Enqueuer interface {
	Enqueue(cmd control.Command) error
}

// Watcher reloads a config file on change and forwards the control section
// as commands. It only ever enqueues; the tick goroutine applies them.
type Watcher struct {
	path     string
	target   Enqueuer
	log      *slog.Logger
	debounce time.Duration
}

// NewWatcher returns a watcher for path. Every valid reload asserts the file's
// control section in full, so the file wins over changes made from the keyboard
// since the previous save.
func NewWatcher(path string, target Enqueuer, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		path:     path,
		target:   target,
		log:      log.With("component", "config-watch", "path", path),
		debounce: DefaultDebounce,
	}
}

// Run watches until ctx is done. The parent directory is watched so editors
// that replace the file by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}
	target := filepath.Clean(w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.log.Warn("ignoring invalid config", "err", err)
		return
	}
	for _, cmd := range commands(c.Control) {
		if err := w.target.Enqueue(cmd); err != nil {
			w.log.Warn("dropping control command", "cmd", cmd.Kind, "err", err)
			continue
		}
		w.log.Info("queued control command", "cmd", cmd.Kind, "size", cmd.Size, "running", cmd.Running)
	}
}

// commands returns the commands that move the controller to c. Re-applying an
// unchanged size or running flag is a no-op in the controller.
func commands(c ControlConfig) []control.Command {
	return []control.Command{
		{Kind: control.CmdResize, Size: core.Size{W: c.Width, H: c.Height}},
		{Kind: control.CmdSetRunning, Running: c.Running},
	}
}
