package ports

import "github.com/bft-labs/wallbridge/internal/domain"

// PreferencesSource loads the current scene preferences.
// The renderer calls Load on its own goroutine after a preferences change.
type PreferencesSource interface {
	// Load returns validated preferences.
	// Implementations return an error and leave the caller's copy untouched
	// when the stored preferences cannot be read or are invalid.
	Load() (domain.Preferences, error)
}
