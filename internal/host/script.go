// Package host replays a scripted sequence of host lifecycle events
// against the bridge. It stands in for the windowing system: events are
// dispatched one at a time from a single goroutine, never re-entrantly.
package host

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/wallbridge/internal/domain"
)

// Event kinds accepted in a script.
const (
	KindConnect          = "connect"
	KindDisconnect       = "disconnect"
	KindEngineCreated    = "engine_created"
	KindEngineDestroyed  = "engine_destroyed"
	KindSurfaceCreated   = "surface_created"
	KindSurfaceChanged   = "surface_changed"
	KindSurfaceDestroyed = "surface_destroyed"
	KindVisibility       = "visibility"
	KindPreferences      = "preferences"
	KindWait             = "wait"
)

// Event is one scripted host callback.
type Event struct {
	Kind     string `toml:"kind"`
	Surface  string `toml:"surface"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Visible  bool   `toml:"visible"`
	Duration string `toml:"duration"`

	// wait is the parsed Duration of a wait event.
	wait time.Duration
}

// Script is an ordered list of host events.
type Script struct {
	Events []Event `toml:"event"`
}

// LoadScript reads and validates a TOML script from path.
func LoadScript(path string) (Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(b)
}

// ParseScript parses and validates a TOML script.
func ParseScript(b []byte) (Script, error) {
	var s Script
	if err := toml.Unmarshal(b, &s); err != nil {
		return Script{}, fmt.Errorf("%w: %v", domain.ErrInvalidScript, err)
	}
	if err := s.validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

func (s *Script) validate() error {
	if len(s.Events) == 0 {
		return fmt.Errorf("%w: no events", domain.ErrInvalidScript)
	}
	for i := range s.Events {
		e := &s.Events[i]
		switch e.Kind {
		case KindConnect, KindDisconnect, KindEngineCreated, KindEngineDestroyed,
			KindSurfaceDestroyed, KindVisibility, KindPreferences:
		case KindSurfaceCreated:
			if e.Surface == "" {
				return fmt.Errorf("%w: event %d: surface_created needs a surface", domain.ErrInvalidScript, i)
			}
		case KindSurfaceChanged:
			if e.Width < 0 || e.Height < 0 {
				return fmt.Errorf("%w: event %d: negative size %dx%d", domain.ErrInvalidScript, i, e.Width, e.Height)
			}
		case KindWait:
			d, err := time.ParseDuration(e.Duration)
			if err != nil || d < 0 {
				return fmt.Errorf("%w: event %d: bad duration %q", domain.ErrInvalidScript, i, e.Duration)
			}
			e.wait = d
		default:
			return fmt.Errorf("%w: event %d: unknown kind %q", domain.ErrInvalidScript, i, e.Kind)
		}
	}
	return nil
}
