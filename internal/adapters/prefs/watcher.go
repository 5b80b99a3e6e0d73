package prefs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/wallbridge/internal/ports"
)

// DefaultDebounceDelay is the default delay after a file change before
// the change is signalled.
const DefaultDebounceDelay = 100 * time.Millisecond

// Notifier receives the preferences-changed signal.
type Notifier interface {
	OnPreferencesChanged()
}

// Watcher watches the preferences file and signals changes, debounced.
type Watcher struct {
	path     string
	delay    time.Duration
	notifier Notifier
	logger   ports.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher creates a watcher for path. delay <= 0 selects DefaultDebounceDelay.
func NewWatcher(path string, delay time.Duration, notifier Notifier, logger ports.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Watcher{
		path:     path,
		delay:    delay,
		notifier: notifier,
		logger:   logger,
	}
}

// Run watches the directory containing the file until ctx is canceled.
// The directory rather than the file is watched so editors that replace
// the file by rename keep being observed.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching preferences", ports.String("path", w.path))

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stopDebounce()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceNotify()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("preferences watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) debounceNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		w.logger.Debug("preferences changed", ports.String("path", w.path))
		w.notifier.OnPreferencesChanged()
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
}
