package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ScriptPath      string `toml:"script"`
	PrefsPath       string `toml:"prefs"`
	SnapshotDir     string `toml:"snapshot_dir"`
	SnapshotEvery   int    `toml:"snapshot_every"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	LogLevel        string `toml:"log_level"`
	Watch           *bool  `toml:"watch"`
	Hold            *bool  `toml:"hold"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.wallbridge/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	return homePath("config.toml")
}

// DefaultPreferencesPath returns ~/.wallbridge/preferences.toml, or "" if
// the home directory is not accessible.
func DefaultPreferencesPath() string {
	return homePath("preferences.toml")
}

func homePath(name string) string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".wallbridge", name)
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("script", fc.ScriptPath, &cfg.ScriptPath)
	s.setString("prefs", fc.PrefsPath, &cfg.PrefsPath)
	s.setString("snapshot-dir", fc.SnapshotDir, &cfg.SnapshotDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("snapshot-every", fc.SnapshotEvery, &cfg.SnapshotEvery)

	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("hold", fc.Hold, &cfg.Hold)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
