// Package prefs stores scene preferences in a TOML file and watches the
// file for changes.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/ports"
)

// fileFormat mirrors domain.Preferences with TOML-friendly types.
// Zero values fall back to the defaults.
type fileFormat struct {
	FlowerCount   *int     `toml:"flower_count"`
	Background    string   `toml:"background"`
	PetalColors   []string `toml:"petal_colors"`
	FrameInterval string   `toml:"frame_interval"`
}

// FileSource loads preferences from a TOML file.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the preferences file path.
func (s *FileSource) Path() string { return s.path }

// Load reads and validates the file. A missing file yields the defaults.
func (s *FileSource) Load() (domain.Preferences, error) {
	prefs := domain.DefaultPreferences()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	var ff fileFormat
	if err := toml.Unmarshal(b, &ff); err != nil {
		return domain.Preferences{}, fmt.Errorf("%w: %v", domain.ErrInvalidPreferences, err)
	}

	if ff.FlowerCount != nil {
		prefs.FlowerCount = *ff.FlowerCount
	}
	if ff.Background != "" {
		prefs.Background = ff.Background
	}
	if len(ff.PetalColors) > 0 {
		prefs.PetalColors = ff.PetalColors
	}
	if ff.FrameInterval != "" {
		d, err := time.ParseDuration(ff.FrameInterval)
		if err != nil {
			return domain.Preferences{}, fmt.Errorf("%w: frame_interval: %v", domain.ErrInvalidPreferences, err)
		}
		prefs.FrameInterval = d
	}

	if err := prefs.Validate(); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}

// Save writes prefs to the file atomically.
func (s *FileSource) Save(prefs domain.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	count := prefs.FlowerCount
	b, err := toml.Marshal(fileFormat{
		FlowerCount:   &count,
		Background:    prefs.Background,
		PetalColors:   prefs.PetalColors,
		FrameInterval: prefs.FrameInterval.String(),
	})
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename preferences: %w", err)
	}
	return nil
}

var _ ports.PreferencesSource = (*FileSource)(nil)
