package host

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/wallbridge/internal/domain"
)

const sampleScript = `
[[event]]
kind = "connect"

[[event]]
kind = "surface_created"
surface = "S1"

[[event]]
kind = "surface_changed"
width = 1080
height = 1920

[[event]]
kind = "visibility"
visible = true

[[event]]
kind = "wait"
duration = "10ms"

[[event]]
kind = "disconnect"
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)
	require.Len(t, s.Events, 6)

	assert.Equal(t, KindConnect, s.Events[0].Kind)
	assert.Equal(t, "S1", s.Events[1].Surface)
	assert.Equal(t, 1080, s.Events[2].Width)
	assert.Equal(t, 1920, s.Events[2].Height)
	assert.True(t, s.Events[3].Visible)
	assert.Equal(t, 10*time.Millisecond, s.Events[4].wait)
}

func TestParseScript_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", ``},
		{"malformed", `[[event]` + "\nkind = "},
		{"unknown kind", "[[event]]\nkind = \"explode\""},
		{"surface without name", "[[event]]\nkind = \"surface_created\""},
		{"negative size", "[[event]]\nkind = \"surface_changed\"\nwidth = -1\nheight = 10"},
		{"bad wait", "[[event]]\nkind = \"wait\"\nduration = \"soon\""},
		{"negative wait", "[[event]]\nkind = \"wait\"\nduration = \"-1s\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.script))
			assert.ErrorIs(t, err, domain.ErrInvalidScript)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, s.Events, 6)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
