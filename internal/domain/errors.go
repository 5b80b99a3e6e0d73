package domain

import "errors"

// Domain errors represent error conditions in the wallbridge domain.
// These errors can be checked with errors.Is.
var (
	// ErrInvalidPreferences is returned when preference validation fails.
	ErrInvalidPreferences = errors.New("wallbridge: invalid preferences")

	// ErrInvalidScript is returned when a host event script cannot be replayed.
	ErrInvalidScript = errors.New("wallbridge: invalid event script")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("wallbridge: invalid configuration")

	// ErrShutdownTimeout is returned when the render goroutine does not exit in time.
	ErrShutdownTimeout = errors.New("wallbridge: shutdown timeout")
)
