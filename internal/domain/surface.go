package domain

import "image"

// Surface is an opaque drawable target owned by the host.
// Its validity is bounded by a matching pair of surface created and
// surface destroyed events. Only the renderer goroutine calls Present.
type Surface interface {
	// ID identifies the surface in logs.
	ID() string

	// Present hands a finished frame to the surface.
	Present(frame image.Image) error
}

// SurfaceID returns the surface ID, or "none" for an absent surface.
func SurfaceID(s Surface) string {
	if s == nil {
		return "none"
	}
	return s.ID()
}
