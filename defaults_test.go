package sysconf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPathsUsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	t.Setenv("SYSCONF_CONFIG_DIR", "")
	t.Setenv("SYSCONF_HISTORY_PATH", "")
	t.Setenv("SYSCONF_CONFIG_PATH", "")

	d := DefaultPaths{}
	require.Equal(t, "/tmp/xdgtest/system-config-manager", d.ConfigDir())
	assert.Equal(t, filepath.Join(d.ConfigDir(), ".history", "current.yaml"), d.OldConfigPath())
	assert.Equal(t, filepath.Join(d.ConfigDir(), "config.yaml"), d.NewConfigPath())
}

func TestDefaultPathsEnvOverrides(t *testing.T) {
	t.Setenv("SYSCONF_CONFIG_DIR", "/tmp/should-be-unused")
	t.Setenv("SYSCONF_HISTORY_PATH", "/tmp/history-override.yaml")
	t.Setenv("SYSCONF_CONFIG_PATH", "/tmp/config-override.yaml")

	d := DefaultPaths{}
	assert.Equal(t, "/tmp/history-override.yaml", d.OldConfigPath())
	assert.Equal(t, "/tmp/config-override.yaml", d.NewConfigPath())
}
