package sysconf

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Defaults resolves the filesystem paths the engine reads from and writes
// to when the caller doesn't supply an explicit path.
type Defaults interface {
	// ConfigDir is the directory holding the user's edited document plus
	// the history of applied configurations.
	ConfigDir() string

	// OldConfigPath is the last applied configuration, read at the start
	// of a run.
	OldConfigPath() string

	// NewConfigPath is the user-edited target document.
	NewConfigPath() string
}

// DefaultPaths implements Defaults using SYSCONF_* environment variable
// overrides, falling back to XDG_CONFIG_HOME (or ~/.config) plus
// "system-config-manager". Any non-empty override is used as given,
// without validation.
type DefaultPaths struct{}

func (DefaultPaths) ConfigDir() string {
	if v := envString("SYSCONF_CONFIG_DIR"); v != "" {
		return v
	}
	return filepath.Join(xdgConfigHome(), "system-config-manager")
}

func (d DefaultPaths) OldConfigPath() string {
	if v := envString("SYSCONF_HISTORY_PATH"); v != "" {
		return v
	}
	return filepath.Join(d.ConfigDir(), ".history", "current.yaml")
}

func (d DefaultPaths) NewConfigPath() string {
	if v := envString("SYSCONF_CONFIG_PATH"); v != "" {
		return v
	}
	return filepath.Join(d.ConfigDir(), "config.yaml")
}

var _ Defaults = DefaultPaths{}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("could not resolve home directory, using relative path", "error", err)
		return ".config"
	}
	return filepath.Join(home, ".config")
}

func envString(key string) string {
	return os.Getenv(key)
}
