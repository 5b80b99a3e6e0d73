// Package surface provides concrete drawable surfaces for the renderer:
// an in-memory surface and a PNG snapshot surface.
package surface

import (
	"image"
	"image/draw"
	"sync"

	"github.com/bft-labs/wallbridge/internal/domain"
)

// Memory keeps a copy of the last presented frame.
type Memory struct {
	id string

	mu     sync.Mutex
	last   *image.RGBA
	frames int
}

// NewMemory creates an in-memory surface.
func NewMemory(id string) *Memory {
	return &Memory{id: id}
}

// ID returns the surface ID.
func (m *Memory) ID() string { return m.id }

// Present copies the frame. The renderer may reuse its buffer afterwards.
func (m *Memory) Present(frame image.Image) error {
	b := frame.Bounds()
	// A fresh buffer per frame: images returned by Last are never written again.
	img := image.NewRGBA(b)
	draw.Draw(img, b, frame, b.Min, draw.Src)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = img
	m.frames++
	return nil
}

// Last returns the last presented frame, or nil. The image is immutable
// and safe to read while frames are still being presented.
func (m *Memory) Last() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil
	}
	return m.last
}

// Frames returns the number of presented frames.
func (m *Memory) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

var _ domain.Surface = (*Memory)(nil)
