package app

import (
	"sync"

	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/ports"
)

// Bridge translates host lifecycle callbacks into an ordered command
// sequence for the renderer.
//
// Ordering guarantees:
//   - Connect precedes any Start, Resize or Resume of a connection epoch.
//   - Disconnect is preceded by Stop while a surface is attached.
//   - Resume is only issued with a surface bound, and always last.
//
// Every entry point holds the bridge mutex for its state mutation and the
// bounded sequence of renderer calls that follows, so concurrent host
// dispatch is serialized. No entry point returns an error or panics;
// unexpected events are absorbed and reported as anomalies.
type Bridge struct {
	mu       sync.Mutex
	renderer ports.Renderer
	logger   ports.Logger
	observer ports.AnomalyObserver

	connections int
	paused      bool
	visible     bool
	// bound is true while the renderer is started on the session handle
	// within the current connection epoch.
	bound   bool
	session domain.SurfaceSession
}

// Snapshot is a point-in-time copy of the bridge state.
type Snapshot struct {
	Connections int
	Paused      bool
	Visible     bool
	Surface     domain.Surface
	Width       int
	Height      int
}

// NewBridge creates a bridge driving the given renderer.
// The observer may be nil.
func NewBridge(renderer ports.Renderer, logger ports.Logger, observer ports.AnomalyObserver) *Bridge {
	return &Bridge{
		renderer: renderer,
		logger:   logger,
		observer: observer,
		paused:   true,
	}
}

// OnConnect registers a connection. The first connection connects the
// renderer and replays a surface attached before it.
func (b *Bridge) OnConnect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.connections++
	if b.connections > 1 {
		b.logger.Debug("connection added", ports.Int("connections", b.connections))
		return
	}

	b.renderer.Connect()
	b.logger.Info("renderer connected")

	if b.session.Attached() {
		b.replay()
	}
}

// OnEngineCreated is called when the host constructs an engine instance.
// It is equivalent to OnConnect.
func (b *Bridge) OnEngineCreated() {
	b.OnConnect()
}

// OnDisconnect releases a connection. Releasing the last one stops the
// renderer, detaches the surface and disconnects the renderer.
func (b *Bridge) OnDisconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.connections == 0 {
		b.anomaly(domain.AnomalyDisconnectUnbalanced, "disconnect without connect")
		return
	}

	b.connections--
	if b.connections > 0 {
		b.logger.Debug("connection released", ports.Int("connections", b.connections))
		return
	}

	b.release()
}

// OnEngineDestroyed tears the bridge down. It disconnects the renderer
// exactly once, whatever the outstanding connection count.
func (b *Bridge) OnEngineDestroyed() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.connections == 0 {
		b.session.Detach()
		b.anomaly(domain.AnomalyDestroyUnbalanced, "engine destroyed while disconnected")
		return
	}

	if b.connections > 1 {
		b.logger.Warn("engine destroyed with outstanding connections",
			ports.Int("connections", b.connections),
		)
	}
	b.connections = 0
	b.release()
}

// OnSurfaceCreated attaches the surface and binds the renderer to it.
// A surface created before the first connection is buffered and bound
// right after the renderer connects.
func (b *Bridge) OnSurfaceCreated(surface domain.Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session.Attach(surface)
	if b.connections == 0 {
		b.anomaly(domain.AnomalyAttachDisconnected, "surface "+domain.SurfaceID(surface)+" buffered until connect")
		return
	}

	b.start()
	// A visibility-true event may have arrived while no surface existed.
	if b.visible && b.paused {
		b.resume()
	}
}

// OnSurfaceChanged records the new size and forwards it to the renderer
// when a surface is bound.
func (b *Bridge) OnSurfaceChanged(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session.Resize(width, height)
	if b.connections == 0 || !b.session.Attached() {
		b.anomaly(domain.AnomalyResizeDetached, "size recorded without a bound surface")
		return
	}

	b.renderer.Resize(b.session.Width(), b.session.Height())
}

// OnSurfaceDestroyed detaches the surface and stops the renderer.
// Stop is reissued on repeated calls.
func (b *Bridge) OnSurfaceDestroyed() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session.Detach()
	b.renderer.Stop()
	b.bound = false
	b.paused = true
}

// OnVisibilityChanged pauses the renderer when hidden. When shown, it
// rebinds the renderer to the current surface and size before resuming,
// since the host does not redeliver surface events for a surface that
// survived the visibility toggle.
func (b *Bridge) OnVisibilityChanged(visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.visible = visible
	if !visible {
		b.renderer.Pause()
		b.paused = true
		return
	}

	switch {
	case b.connections == 0:
		b.anomaly(domain.AnomalyVisibleDisconnected, "visible before connect")
	case !b.session.Attached():
		b.anomaly(domain.AnomalyVisibleDetached, "visible without a surface")
	default:
		b.replay()
	}
}

// OnPreferencesChanged forwards a preferences change to the renderer.
func (b *Bridge) OnPreferencesChanged() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.renderer.PreferencesChanged()
}

// Snapshot returns a copy of the current state.
func (b *Bridge) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		Connections: b.connections,
		Paused:      b.paused,
		Visible:     b.visible,
		Surface:     b.session.Handle(),
		Width:       b.session.Width(),
		Height:      b.session.Height(),
	}
}

// replay binds the renderer to the session surface and size, then resumes
// it when visible. Must be called with b.mu held and a surface attached.
func (b *Bridge) replay() {
	if !b.bound {
		b.start()
	}
	b.renderer.Resize(b.session.Width(), b.session.Height())
	if b.visible {
		b.resume()
	}
}

func (b *Bridge) start() {
	surface := b.session.Handle()
	b.renderer.Start(surface)
	b.bound = true
	b.logger.Debug("renderer started", ports.String("surface", domain.SurfaceID(surface)))
}

func (b *Bridge) resume() {
	b.renderer.Resume()
	b.paused = false
}

// release stops and disconnects the renderer at the end of a connection
// epoch. Must be called with b.mu held.
func (b *Bridge) release() {
	if b.session.Attached() {
		b.renderer.Stop()
		b.session.Detach()
	}
	b.bound = false
	b.paused = true
	b.renderer.Disconnect()
	b.logger.Info("renderer disconnected")
}

func (b *Bridge) anomaly(kind domain.Anomaly, detail string) {
	b.logger.Warn("lifecycle anomaly",
		ports.Any("anomaly", kind),
		ports.String("detail", detail),
		ports.Int("connections", b.connections),
		ports.Bool("visible", b.visible),
	)
	if b.observer != nil {
		b.observer.OnAnomaly(kind, detail)
	}
}
