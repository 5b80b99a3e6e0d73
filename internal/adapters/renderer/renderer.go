// Package renderer implements ports.Renderer on a dedicated goroutine.
//
// Every port call is sent over an unbuffered channel and blocks until the
// render goroutine has processed it, so the caller always observes the
// side effects of the previous call. Between calls the goroutine draws
// frames while it is resumed, bound to a surface and sized.
package renderer

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"

	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/ports"
)

// Config holds options for the renderer.
type Config struct {
	// Preferences supplies scene settings. Defaults are used when nil.
	Preferences ports.PreferencesSource

	// Scene draws each frame. Default: FlowerScene.
	Scene Scene

	// ShutdownTimeout bounds how long Disconnect waits for the render goroutine.
	// Default: 5 seconds
	ShutdownTimeout time.Duration
}

type commandKind int

const (
	cmdConnect commandKind = iota
	cmdExit
	cmdStart
	cmdStop
	cmdResize
	cmdPause
	cmdResume
	cmdPreferences
)

var commandNames = [...]string{"connect", "exit", "start", "stop", "resize", "pause", "resume", "preferences"}

func (k commandKind) String() string { return commandNames[k] }

type command struct {
	kind    commandKind
	surface domain.Surface
	width   int
	height  int
	done    chan struct{}
}

// Renderer runs the scene on its own goroutine. It is started by Connect
// and stopped by Disconnect; calls made while no goroutine runs are
// dropped.
type Renderer struct {
	cfg       Config
	logger    ports.Logger
	lifecycle *Lifecycle

	mu     sync.Mutex
	cmds   chan command
	exited chan struct{}

	frames        atomic.Uint64
	presentErrors atomic.Uint64

	// hung is set once the render goroutine failed to exit in time. It
	// still holds its lifecycle worker slot, so no new goroutine is started.
	hung atomic.Bool
}

// New creates a renderer. The emitter may be nil.
func New(cfg Config, logger ports.Logger, emitter EventEmitter) *Renderer {
	if cfg.Scene == nil {
		cfg.Scene = FlowerScene{}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Renderer{
		cfg:       cfg,
		logger:    logger,
		lifecycle: NewLifecycle(logger, emitter),
	}
}

// State returns the lifecycle state of the render goroutine.
func (r *Renderer) State() State {
	return r.lifecycle.State()
}

// FramesPresented returns the number of frames handed to surfaces.
func (r *Renderer) FramesPresented() uint64 {
	return r.frames.Load()
}

// PresentErrors returns the number of frames a surface rejected.
func (r *Renderer) PresentErrors() uint64 {
	return r.presentErrors.Load()
}

// Connect starts the render goroutine and waits until it has loaded its
// preferences.
func (r *Renderer) Connect() {
	if r.hung.Load() {
		r.logger.Error("renderer cannot be recovered after a stuck shutdown")
		return
	}
	if !r.lifecycle.CanStart() {
		r.logger.Warn("renderer already connected", ports.String("state", r.lifecycle.State().String()))
		return
	}
	if err := r.lifecycle.TransitionTo(StateStarting, "connect"); err != nil {
		r.logger.Error("renderer connect", ports.Err(err))
		return
	}

	cmds := make(chan command)
	exited := make(chan struct{})
	r.mu.Lock()
	r.cmds, r.exited = cmds, exited
	r.mu.Unlock()

	r.lifecycle.AddWorker()
	go r.loop(cmds, exited)

	r.call(command{kind: cmdConnect})
}

// Disconnect stops the render goroutine and waits for it to release its
// drawing context. A goroutine that does not exit within ShutdownTimeout
// is abandoned; the renderer then moves to StateCrashed for good.
func (r *Renderer) Disconnect() {
	if !r.lifecycle.CanStop() {
		if r.lifecycle.State() == StateCrashed {
			_ = r.lifecycle.TransitionTo(StateStopped, "disconnect after crash")
			r.detach()
			return
		}
		r.logger.Debug("renderer not connected", ports.String("state", r.lifecycle.State().String()))
		return
	}
	_ = r.lifecycle.TransitionTo(StateStopping, "disconnect")

	if !r.callWithin(command{kind: cmdExit}, r.cfg.ShutdownTimeout) {
		r.abandon()
		return
	}
	if err := r.lifecycle.WaitWithTimeout(r.cfg.ShutdownTimeout); err != nil {
		r.abandon()
		return
	}
	r.detach()
	_ = r.lifecycle.TransitionTo(StateStopped, "render goroutine exited")
}

// Start binds rendering output to the surface.
func (r *Renderer) Start(surface domain.Surface) {
	r.call(command{kind: cmdStart, surface: surface})
}

// Stop unbinds rendering output. Safe when nothing is bound.
func (r *Renderer) Stop() {
	r.call(command{kind: cmdStop})
}

// Resize updates the viewport dimensions.
func (r *Renderer) Resize(width, height int) {
	r.call(command{kind: cmdResize, width: width, height: height})
}

// Pause stops drawing and releases the drawing context. The surface stays bound.
func (r *Renderer) Pause() {
	r.call(command{kind: cmdPause})
}

// Resume restores drawing.
func (r *Renderer) Resume() {
	r.call(command{kind: cmdResume})
}

// PreferencesChanged reloads preferences on the render goroutine.
func (r *Renderer) PreferencesChanged() {
	r.call(command{kind: cmdPreferences})
}

// abandon gives up on a render goroutine that did not exit in time.
func (r *Renderer) abandon() {
	r.hung.Store(true)
	r.logger.Error("render goroutine is stuck, renderer cannot be recovered",
		ports.Duration("timeout", r.cfg.ShutdownTimeout),
	)
	_ = r.lifecycle.TransitionTo(StateCrashed, domain.ErrShutdownTimeout.Error())
	r.detach()
}

func (r *Renderer) detach() {
	r.mu.Lock()
	r.cmds, r.exited = nil, nil
	r.mu.Unlock()
}

// call delivers cmd to the render goroutine and blocks until it is
// processed or the goroutine exits.
func (r *Renderer) call(cmd command) {
	r.mu.Lock()
	cmds, exited := r.cmds, r.exited
	r.mu.Unlock()

	if cmds == nil {
		r.logger.Debug("renderer not running, dropping call", ports.String("call", cmd.kind.String()))
		return
	}

	cmd.done = make(chan struct{})
	select {
	case cmds <- cmd:
	case <-exited:
		return
	}
	select {
	case <-cmd.done:
	case <-exited:
	}
}

// callWithin is call bounded by timeout. It reports false if the render
// goroutine neither exited nor processed cmd in time.
func (r *Renderer) callWithin(cmd command, timeout time.Duration) bool {
	r.mu.Lock()
	cmds, exited := r.cmds, r.exited
	r.mu.Unlock()

	if cmds == nil {
		return true
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	cmd.done = make(chan struct{})
	select {
	case cmds <- cmd:
	case <-exited:
		return true
	case <-deadline.C:
		return false
	}
	select {
	case <-cmd.done:
	case <-exited:
	case <-deadline.C:
		return false
	}
	return true
}

// thread is the state owned by the render goroutine.
type thread struct {
	prefs   domain.Preferences
	paused  bool
	surface domain.Surface
	width   int
	height  int

	// dc is the drawing context; nil while paused or before the first frame.
	dc    *gg.Context
	frame uint64
}

func (t *thread) ready() bool {
	return !t.paused && t.surface != nil && t.width > 0 && t.height > 0
}

func (t *thread) releaseContext() {
	if t.dc != nil {
		_ = t.dc.Close()
		t.dc = nil
	}
}

func (r *Renderer) loop(cmds <-chan command, exited chan struct{}) {
	defer r.lifecycle.WorkerDone()
	defer close(exited)

	t := &thread{prefs: domain.DefaultPreferences(), paused: true}
	defer func() {
		t.releaseContext()
		if p := recover(); p != nil {
			r.logger.Error("render goroutine panicked", ports.Any("panic", p))
			_ = r.lifecycle.TransitionTo(StateCrashed, fmt.Sprint(p))
		}
	}()

	ticker := time.NewTicker(t.prefs.FrameInterval)
	defer ticker.Stop()

	for {
		var tick <-chan time.Time
		if t.ready() {
			tick = ticker.C
		}

		select {
		case cmd := <-cmds:
			exit := r.apply(t, cmd, ticker)
			close(cmd.done)
			if exit {
				return
			}
		case <-tick:
			r.drawFrame(t)
		}
	}
}

// apply executes one command on the render goroutine. It reports whether
// the goroutine should exit.
func (r *Renderer) apply(t *thread, cmd command, ticker *time.Ticker) bool {
	switch cmd.kind {
	case cmdConnect:
		r.reloadPreferences(t, ticker)
		_ = r.lifecycle.TransitionTo(StateRunning, "render goroutine started")
	case cmdExit:
		t.surface = nil
		return true
	case cmdStart:
		if t.surface != cmd.surface {
			// A new surface needs a fresh drawing context.
			t.releaseContext()
		}
		t.surface = cmd.surface
	case cmdStop:
		t.surface = nil
		t.paused = true
		t.releaseContext()
	case cmdResize:
		t.width, t.height = max(cmd.width, 0), max(cmd.height, 0)
	case cmdPause:
		t.paused = true
		t.releaseContext()
	case cmdResume:
		t.paused = false
	case cmdPreferences:
		r.reloadPreferences(t, ticker)
	}
	return false
}

func (r *Renderer) reloadPreferences(t *thread, ticker *time.Ticker) {
	if r.cfg.Preferences == nil {
		return
	}
	prefs, err := r.cfg.Preferences.Load()
	if err != nil {
		r.logger.Warn("keeping previous preferences", ports.Err(err))
		return
	}
	t.prefs = prefs
	ticker.Reset(prefs.FrameInterval)
	r.logger.Debug("preferences loaded",
		ports.Int("flowers", prefs.FlowerCount),
		ports.Duration("frame_interval", prefs.FrameInterval),
	)
}

func (r *Renderer) drawFrame(t *thread) {
	if t.dc == nil {
		t.dc = gg.NewContext(t.width, t.height)
	} else if t.dc.Width() != t.width || t.dc.Height() != t.height {
		if err := t.dc.Resize(t.width, t.height); err != nil {
			r.logger.Error("resize drawing context", ports.Err(err))
			return
		}
	}

	if err := r.cfg.Scene.Draw(t.dc, t.prefs, t.frame); err != nil {
		r.logger.Error("draw frame", ports.Err(err))
		return
	}
	t.frame++

	if err := t.surface.Present(t.dc.Image()); err != nil {
		r.presentErrors.Add(1)
		r.logger.Warn("present frame",
			ports.String("surface", t.surface.ID()),
			ports.Err(err),
		)
		return
	}
	r.frames.Add(1)
}

var _ ports.Renderer = (*Renderer)(nil)
