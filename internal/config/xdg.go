// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "bikeshare", "config.toml")
}

// DefaultDataDir is where city files are looked up when the config does not
// name a directory.
func DefaultDataDir() string {
	if v := os.Getenv("BIKESHARE_DATA_DIR"); v != "" {
		return v
	}
	return "."
}
