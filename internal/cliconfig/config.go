package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/wallbridge/internal/adapters/renderer"
	"github.com/bft-labs/wallbridge/internal/adapters/surface"
	"github.com/bft-labs/wallbridge/internal/domain"
)

// Config holds CLI configuration for wallbridge.
type Config struct {
	ScriptPath string
	PrefsPath  string

	SnapshotDir   string
	SnapshotEvery int

	ShutdownTimeout time.Duration
	LogLevel        string

	Watch bool
	Hold  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SnapshotEvery:   surface.DefaultSnapshotEvery,
		ShutdownTimeout: renderer.DefaultShutdownTimeout,
		LogLevel:        "info",
		PrefsPath:       "", // Derived from the home directory during Validate
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.ScriptPath == "" {
		return fmt.Errorf("%w: script is required", domain.ErrInvalidConfig)
	}

	if c.PrefsPath == "" {
		c.PrefsPath = DefaultPreferencesPath()
		if c.PrefsPath == "" {
			return fmt.Errorf("%w: prefs is required (no home directory)", domain.ErrInvalidConfig)
		}
	}

	if c.SnapshotEvery <= 0 {
		return fmt.Errorf("%w: snapshot-every must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown-timeout must be positive", domain.ErrInvalidConfig)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level %q", domain.ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// Level returns the zerolog level named by LogLevel, or info if it is unknown.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// ApplyEnvConfig applies configuration from environment variables (WALLBRIDGE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("script", os.Getenv("WALLBRIDGE_SCRIPT"), &cfg.ScriptPath)
	s.setString("prefs", os.Getenv("WALLBRIDGE_PREFS"), &cfg.PrefsPath)
	s.setString("snapshot-dir", os.Getenv("WALLBRIDGE_SNAPSHOT_DIR"), &cfg.SnapshotDir)
	s.setString("log-level", os.Getenv("WALLBRIDGE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("snapshot-every", os.Getenv("WALLBRIDGE_SNAPSHOT_EVERY"), &cfg.SnapshotEvery); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("WALLBRIDGE_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("WALLBRIDGE_WATCH"), &cfg.Watch)
	s.setBoolFromString("hold", os.Getenv("WALLBRIDGE_HOLD"), &cfg.Hold)

	return nil
}

var logger zerolog.Logger

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Logger returns the CLI logger.
func Logger() zerolog.Logger {
	return logger
}
