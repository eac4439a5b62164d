package sysconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisskorka/sysconf/internal/fileutil"
	"github.com/chrisskorka/sysconf/internal/pathutil"
	"github.com/chrisskorka/sysconf/sysconferrors"
)

// FileReader reads a UTF-8 text file in full.
type FileReader interface {
	Read(path string) (string, error)
}

// FileWriter writes a UTF-8 text file in full, creating parent
// directories as needed.
type FileWriter interface {
	Write(path string, contents string) error
}

// OSFileReader reads files straight off the local filesystem.
type OSFileReader struct{}

func (OSFileReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("sysconf: reading %s: %w", path, err)
	}
	return string(data), nil
}

var _ FileReader = OSFileReader{}

// OSFileWriter writes files to the local filesystem, rejecting a target
// that is a symlink via pathutil.SanitizeOutputPath and creating parent
// directories (history files live under a directory that may not exist
// on first run).
type OSFileWriter struct{}

func (OSFileWriter) Write(path string, contents string) error {
	clean, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return &sysconferrors.PersistFailure{Path: path, Content: contents, Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(clean), fileutil.OwnerTraversable); err != nil {
		return &sysconferrors.PersistFailure{Path: path, Content: contents, Cause: err}
	}

	if err := os.WriteFile(clean, []byte(contents), fileutil.OwnerReadWrite); err != nil {
		return &sysconferrors.PersistFailure{Path: path, Content: contents, Cause: err}
	}
	return nil
}

var _ FileWriter = OSFileWriter{}
