package surface

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"

	"github.com/bft-labs/wallbridge/internal/domain"
)

// DefaultSnapshotEvery is the default number of frames between snapshots.
const DefaultSnapshotEvery = 30

// PNG writes every n-th presented frame to <dir>/<id>.png.
// The file is replaced atomically so readers never see a partial image.
type PNG struct {
	id    string
	path  string
	every int

	mu     sync.Mutex
	frames int
}

// NewPNG creates a snapshot surface writing into dir.
// every <= 0 selects DefaultSnapshotEvery.
func NewPNG(id, dir string, every int) *PNG {
	if every <= 0 {
		every = DefaultSnapshotEvery
	}
	return &PNG{
		id:    id,
		path:  filepath.Join(dir, id+".png"),
		every: every,
	}
}

// ID returns the surface ID.
func (p *PNG) ID() string { return p.id }

// Path returns the snapshot file path.
func (p *PNG) Path() string { return p.path }

// Present writes the first frame and every n-th frame after it.
func (p *PNG) Present(frame image.Image) error {
	p.mu.Lock()
	n := p.frames
	p.frames++
	p.mu.Unlock()

	if n%p.every != 0 {
		return nil
	}

	tmp := p.path + ".tmp"
	if err := gg.FromImage(frame).SavePNG(tmp); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// Factory creates surfaces by ID. With a snapshot directory it creates
// PNG surfaces, otherwise in-memory ones.
type Factory struct {
	Dir   string
	Every int
}

// New creates the surface for id.
func (f Factory) New(id string) domain.Surface {
	if f.Dir == "" {
		return NewMemory(id)
	}
	return NewPNG(id, f.Dir, f.Every)
}

var _ domain.Surface = (*PNG)(nil)
