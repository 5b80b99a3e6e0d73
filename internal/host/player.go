package host

import (
	"context"
	"time"

	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/ports"
)

// Callbacks is the host-facing surface of the lifecycle bridge.
type Callbacks interface {
	OnConnect()
	OnDisconnect()
	OnEngineCreated()
	OnEngineDestroyed()
	OnSurfaceCreated(surface domain.Surface)
	OnSurfaceChanged(width, height int)
	OnSurfaceDestroyed()
	OnVisibilityChanged(visible bool)
	OnPreferencesChanged()
}

// SurfaceFactory creates the surface for a scripted surface name.
type SurfaceFactory interface {
	New(id string) domain.Surface
}

// Player dispatches script events to the bridge.
type Player struct {
	callbacks Callbacks
	surfaces  SurfaceFactory
	logger    ports.Logger
}

// NewPlayer creates a player.
func NewPlayer(callbacks Callbacks, surfaces SurfaceFactory, logger ports.Logger) *Player {
	return &Player{
		callbacks: callbacks,
		surfaces:  surfaces,
		logger:    logger,
	}
}

// Play dispatches each event in order. It returns ctx.Err() if canceled
// between events or during a wait.
func (p *Player) Play(ctx context.Context, s Script) error {
	// Surfaces keep their identity across repeated surface_created events.
	created := make(map[string]domain.Surface)

	for i, e := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.logger.Debug("host event", ports.Int("index", i), ports.String("kind", e.Kind))

		switch e.Kind {
		case KindConnect:
			p.callbacks.OnConnect()
		case KindDisconnect:
			p.callbacks.OnDisconnect()
		case KindEngineCreated:
			p.callbacks.OnEngineCreated()
		case KindEngineDestroyed:
			p.callbacks.OnEngineDestroyed()
		case KindSurfaceCreated:
			surface, ok := created[e.Surface]
			if !ok {
				surface = p.surfaces.New(e.Surface)
				created[e.Surface] = surface
			}
			p.callbacks.OnSurfaceCreated(surface)
		case KindSurfaceChanged:
			p.callbacks.OnSurfaceChanged(e.Width, e.Height)
		case KindSurfaceDestroyed:
			p.callbacks.OnSurfaceDestroyed()
		case KindVisibility:
			p.callbacks.OnVisibilityChanged(e.Visible)
		case KindPreferences:
			p.callbacks.OnPreferencesChanged()
		case KindWait:
			if err := sleep(ctx, e.wait); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
