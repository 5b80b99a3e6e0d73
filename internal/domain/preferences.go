package domain

import (
	"fmt"
	"strings"
	"time"
)

// Limits for user preferences.
const (
	MaxFlowerCount   = 64
	MinFrameInterval = 5 * time.Millisecond
)

// Preferences holds the scene settings the renderer reloads whenever the
// host signals a preferences change.
type Preferences struct {
	// FlowerCount is the number of flowers drawn per frame.
	FlowerCount int

	// Background is the clear colour as a hex string (e.g. "#102018").
	Background string

	// PetalColors are hex colours cycled across flowers.
	PetalColors []string

	// FrameInterval is the delay between frames while resumed.
	FrameInterval time.Duration
}

// DefaultPreferences returns Preferences with sensible defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		FlowerCount:   6,
		Background:    "#0b1a12",
		PetalColors:   []string{"#f2c14e", "#f78154", "#b4436c", "#5fad56"},
		FrameInterval: 33 * time.Millisecond,
	}
}

// Validate checks the preferences for errors.
func (p Preferences) Validate() error {
	if p.FlowerCount < 0 || p.FlowerCount > MaxFlowerCount {
		return fmt.Errorf("%w: flower count %d out of range [0, %d]", ErrInvalidPreferences, p.FlowerCount, MaxFlowerCount)
	}
	if !isHexColor(p.Background) {
		return fmt.Errorf("%w: background %q is not a hex colour", ErrInvalidPreferences, p.Background)
	}
	if len(p.PetalColors) == 0 {
		return fmt.Errorf("%w: at least one petal colour is required", ErrInvalidPreferences)
	}
	for _, c := range p.PetalColors {
		if !isHexColor(c) {
			return fmt.Errorf("%w: petal colour %q is not a hex colour", ErrInvalidPreferences, c)
		}
	}
	if p.FrameInterval < MinFrameInterval {
		return fmt.Errorf("%w: frame interval %v below %v", ErrInvalidPreferences, p.FrameInterval, MinFrameInterval)
	}
	return nil
}

// isHexColor accepts RGB, RGBA, RRGGBB and RRGGBBAA with an optional '#'.
func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
