package domain

// SurfaceSession records the currently attached surface and its last known
// pixel dimensions. The dimensions survive Detach and Attach so that a late
// resize never has to be re-derived after the surface is replaced.
//
// The zero value is an empty session ready for use.
type SurfaceSession struct {
	handle Surface
	width  int
	height int
}

// Attach stores the handle. The dimensions are left untouched.
func (s *SurfaceSession) Attach(handle Surface) {
	s.handle = handle
}

// Detach clears the handle. The dimensions are left untouched.
func (s *SurfaceSession) Detach() {
	s.handle = nil
}

// Resize records new dimensions whether or not a handle is attached.
// Negative values are clamped to zero.
func (s *SurfaceSession) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Handle returns the attached surface, or nil.
func (s *SurfaceSession) Handle() Surface {
	return s.handle
}

// Attached reports whether a surface handle is present.
func (s *SurfaceSession) Attached() bool {
	return s.handle != nil
}

// Width returns the last known width in pixels.
func (s *SurfaceSession) Width() int {
	return s.width
}

// Height returns the last known height in pixels.
func (s *SurfaceSession) Height() int {
	return s.height
}
