// Package wallbridge adapts live wallpaper host lifecycle callbacks to a
// continuously running renderer.
//
// Example usage:
//
//	b := wallbridge.New(wallbridge.Options{PrefsPath: "/path/to/preferences.toml"})
//	b.OnConnect()
//	b.OnSurfaceCreated(wallbridge.NewMemorySurface("main"))
//	b.OnSurfaceChanged(1080, 1920)
//	b.OnVisibilityChanged(true)
//	...
//	b.OnEngineDestroyed()
package wallbridge

import (
	"time"

	logAdapter "github.com/bft-labs/wallbridge/internal/adapters/log"
	"github.com/bft-labs/wallbridge/internal/adapters/prefs"
	"github.com/bft-labs/wallbridge/internal/adapters/renderer"
	"github.com/bft-labs/wallbridge/internal/adapters/surface"
	"github.com/bft-labs/wallbridge/internal/app"
	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/ports"
)

// Bridge receives host lifecycle callbacks and drives the renderer.
type Bridge = app.Bridge

// Snapshot is a point-in-time copy of the bridge state.
type Snapshot = app.Snapshot

// Surface is an opaque drawable target owned by the host.
type Surface = domain.Surface

// Preferences are the user settings the scene is drawn with.
type Preferences = domain.Preferences

// Anomaly classifies an out-of-order host event.
type Anomaly = domain.Anomaly

// AnomalyObserver is notified of out-of-order host events.
type AnomalyObserver = ports.AnomalyObserver

// Logger is the logging interface used by all components.
type Logger = ports.Logger

// Options configures New.
type Options struct {
	// PrefsPath is the TOML preferences file. Defaults are used when empty.
	PrefsPath string

	// Logger receives diagnostics. Default: no-op.
	Logger Logger

	// Observer is notified of anomalies. Optional.
	Observer AnomalyObserver

	// ShutdownTimeout bounds how long a disconnect waits for the render
	// goroutine. Default: 5 seconds
	ShutdownTimeout time.Duration
}

// New creates a bridge driving the built-in flower renderer.
func New(opts Options) *Bridge {
	logger := opts.Logger
	if logger == nil {
		logger = logAdapter.NewNop()
	}

	cfg := renderer.Config{ShutdownTimeout: opts.ShutdownTimeout}
	if opts.PrefsPath != "" {
		cfg.Preferences = prefs.NewFileSource(opts.PrefsPath)
	}

	return app.NewBridge(renderer.New(cfg, logger, nil), logger, opts.Observer)
}

// NewMemorySurface creates a surface that keeps the last presented frame
// in memory.
func NewMemorySurface(id string) *surface.Memory {
	return surface.NewMemory(id)
}

// DefaultPreferences returns the preferences used when none are stored.
func DefaultPreferences() Preferences {
	return domain.DefaultPreferences()
}
