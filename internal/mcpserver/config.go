package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// AllowApply gates the apply tool. Preview and show are always
	// available; mutating the host from an MCP client must be opted into.
	AllowApply bool

	// MaxInlineSize caps inline document content in bytes.
	MaxInlineSize int64

	// HistoryPath overrides where apply reads and writes the last-applied
	// state. Empty means the standard defaults resolution.
	HistoryPath string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SYSCONF_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		AllowApply:    envBool("SYSCONF_MCP_ALLOW_APPLY", false),
		MaxInlineSize: envInt64("SYSCONF_MAX_INLINE_SIZE", 1<<20),
		HistoryPath:   os.Getenv("SYSCONF_HISTORY_PATH"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
