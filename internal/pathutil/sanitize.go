package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeOutputPath validates and cleans a path before state is written
// to it. The path is cleaned and made absolute, so ".." segments are
// resolved lexically; the result is rejected if it still contains ".."
// (as in a name like "a..b") or if its final element is a symlink (a
// history file that is secretly a link elsewhere must not be written
// through). New files in existing directories are accepted. Returns the
// cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	cleaned := filepath.Clean(path)

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	if strings.Contains(abs, "..") {
		return "", fmt.Errorf("pathutil: path must not contain '..': %s", abs)
	}

	info, err := os.Lstat(abs)
	if err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
	}

	return abs, nil
}
