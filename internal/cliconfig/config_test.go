package cliconfig

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/wallbridge/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SnapshotEvery != 30 {
		t.Errorf("SnapshotEvery = %v, want 30", cfg.SnapshotEvery)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.Watch || cfg.Hold {
		t.Errorf("Watch = %v, Hold = %v, want both false", cfg.Watch, cfg.Hold)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid minimal config",
			config: Config{
				ScriptPath:      "/tmp/script.toml",
				PrefsPath:       "/tmp/prefs.toml",
				SnapshotEvery:   1,
				ShutdownTimeout: time.Second,
				LogLevel:        "debug",
			},
			wantErr: false,
		},
		{
			name: "missing script",
			config: Config{
				PrefsPath:       "/tmp/prefs.toml",
				SnapshotEvery:   1,
				ShutdownTimeout: time.Second,
			},
			wantErr: true,
		},
		{
			name: "invalid snapshot interval",
			config: Config{
				ScriptPath:      "/tmp/script.toml",
				PrefsPath:       "/tmp/prefs.toml",
				ShutdownTimeout: time.Second,
			},
			wantErr: true,
		},
		{
			name: "invalid shutdown timeout",
			config: Config{
				ScriptPath:      "/tmp/script.toml",
				PrefsPath:       "/tmp/prefs.toml",
				SnapshotEvery:   1,
				ShutdownTimeout: -1,
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			config: Config{
				ScriptPath:      "/tmp/script.toml",
				PrefsPath:       "/tmp/prefs.toml",
				SnapshotEvery:   1,
				ShutdownTimeout: time.Second,
				LogLevel:        "loud",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	// Preferences path defaults to the home directory
	c1 := Config{
		ScriptPath:      "/tmp/script.toml",
		SnapshotEvery:   1,
		ShutdownTimeout: time.Second,
	}
	if err := c1.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.HasSuffix(c1.PrefsPath, "preferences.toml") {
		t.Errorf("PrefsPath = %v, want .../preferences.toml", c1.PrefsPath)
	}
	if c1.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", c1.LogLevel)
	}

	// Log level is normalised
	c2 := Config{
		ScriptPath:      "/tmp/script.toml",
		PrefsPath:       "/prefs.toml",
		SnapshotEvery:   1,
		ShutdownTimeout: time.Second,
		LogLevel:        " WARN ",
	}
	if err := c2.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c2.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", c2.LogLevel)
	}
	if c2.PrefsPath != "/prefs.toml" {
		t.Errorf("PrefsPath = %v, want /prefs.toml", c2.PrefsPath)
	}
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := (Config{LogLevel: tt.level}).Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
