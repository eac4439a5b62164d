package mcpserver

import (
	"errors"
	"fmt"
	"os"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/internal/options"
)

// documentInput represents the two ways a configuration document can be
// provided to a tool. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a configuration document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline configuration document content (YAML)"`
}

// resolve parses the document from whichever input was provided.
func (d documentInput) resolve(builtins *domain.Registry) (*document.SystemConfig, error) {
	if err := options.ValidateSingleInputSource(
		"one of file or content must be provided",
		"only one of file or content may be provided",
		d.File != "", d.Content != ""); err != nil {
		return nil, err
	}

	data := d.Content
	if d.File != "" {
		read, err := sysconf.OSFileReader{}.Read(d.File)
		if err != nil {
			return nil, err
		}
		data = read
	} else if int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SYSCONF_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}

	return document.Parse([]byte(data), builtins)
}

// historyPath resolves where the last-applied state lives, preferring the
// server config override.
func historyPath() string {
	if cfg.HistoryPath != "" {
		return cfg.HistoryPath
	}
	return sysconf.DefaultPaths{}.OldConfigPath()
}

// loadHistory reads and parses the last-applied state. A missing history
// file is the empty configuration (nothing applied yet).
func loadHistory(builtins *domain.Registry) (*document.SystemConfig, error) {
	data, err := sysconf.OSFileReader{}.Read(historyPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &document.SystemConfig{}, nil
		}
		return nil, err
	}
	return document.Parse([]byte(data), builtins)
}
