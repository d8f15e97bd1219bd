package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellgrid/internal/control"
	"cellgrid/internal/core"
)

type recorder struct {
	mu   sync.Mutex
	cmds []control.Command
}

func (r *recorder) Enqueue(cmd control.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) snapshot() []control.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]control.Command(nil), r.cmds...)
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestCommandsAssertWholeSection(t *testing.T) {
	c := Default().Control
	c.Width = 30
	c.Running = true
	assert.Equal(t, []control.Command{
		{Kind: control.CmdResize, Size: core.Size{W: 30, H: c.Height}},
		{Kind: control.CmdSetRunning, Running: true},
	}, commands(c))
}

func TestWatcherReloadEnqueuesFileState(t *testing.T) {
	path := writeFile(t, "cellgrid.yaml", "control:\n  width: 25\n  height: 25\n")
	rec := &recorder{}
	w := NewWatcher(path, rec, quiet())

	require.NoError(t, os.WriteFile(path, []byte("control:\n  width: 10\n  height: 12\n"), 0o644))
	w.reload()
	assert.Equal(t, []control.Command{
		{Kind: control.CmdResize, Size: core.Size{W: 10, H: 12}},
		{Kind: control.CmdSetRunning, Running: false},
	}, rec.snapshot())

	// Invalid files are ignored.
	require.NoError(t, os.WriteFile(path, []byte("control:\n  width: 0\n"), 0o644))
	w.reload()
	assert.Len(t, rec.snapshot(), 2)
}

func TestReloadOverridesKeyboardResize(t *testing.T) {
	path := writeFile(t, "cellgrid.yaml", "control:\n  width: 25\n  height: 25\n")
	ctrl, err := control.NewController(control.Control{Size: core.Size{W: 25, H: 25}, Running: true})
	require.NoError(t, err)
	w := NewWatcher(path, ctrl, quiet())

	// A resize from the keyboard, then the unchanged file is saved again.
	require.NoError(t, ctrl.Resize(30, 30))
	w.reload()
	require.NoError(t, ctrl.Apply())
	assert.Equal(t, core.Size{W: 25, H: 25}, ctrl.Snapshot().Size)
	assert.False(t, ctrl.Snapshot().Running)
}

func TestWatcherRunPicksUpWrites(t *testing.T) {
	path := writeFile(t, "cellgrid.yaml", "control:\n  width: 25\n  height: 25\n")
	rec := &recorder{}
	w := NewWatcher(path, rec, quiet())
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("control:\n  width: 9\n  height: 9\n  running: true\n"), 0o644))

	assert.Eventually(t, func() bool { return len(rec.snapshot()) >= 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
