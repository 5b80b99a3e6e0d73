package prefs

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/wallbridge/internal/ports"
)

type countingNotifier struct {
	n atomic.Int32
}

func (c *countingNotifier) OnPreferencesChanged() { c.n.Add(1) }

// readyLogger closes ready on the first info entry, which Run emits once
// the directory is watched.
type readyLogger struct {
	ready chan struct{}
	once  atomic.Bool
}

func (l *readyLogger) Debug(msg string, fields ...ports.Field) {}
func (l *readyLogger) Warn(msg string, fields ...ports.Field)  {}
func (l *readyLogger) Error(msg string, fields ...ports.Field) {}
func (l *readyLogger) Info(msg string, fields ...ports.Field) {
	if l.once.CompareAndSwap(false, true) {
		close(l.ready)
	}
}

func startWatcher(t *testing.T, path string, n *countingNotifier) {
	t.Helper()
	logger := &readyLogger{ready: make(chan struct{})}
	w := NewWatcher(path, 30*time.Millisecond, n, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	select {
	case <-logger.ready:
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not start")
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	n := &countingNotifier{}
	startWatcher(t, path, n)

	for i := 0; i < 5; i++ {
		writeFile(t, path, "flower_count = 2\n")
	}

	require.Eventually(t, func() bool { return n.n.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), n.n.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	n := &countingNotifier{}
	startWatcher(t, filepath.Join(dir, "prefs.toml"), n)

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")
	time.Sleep(100 * time.Millisecond)

	assert.Zero(t, n.n.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "prefs.toml"), 0, &countingNotifier{}, &readyLogger{ready: make(chan struct{})})

	assert.Error(t, w.Run(context.Background()))
}
