// Package commands provides CLI command handlers for sysconf.
package commands

import (
	"io"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/internal/cliutil"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Writef writes formatted output to the writer, logging write failures to
// stderr rather than surfacing them.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// resolveTargetPath picks the target document path: the positional
// argument when given, the standard defaults otherwise.
func resolveTargetPath(arg string) string {
	if arg != "" {
		return arg
	}
	return sysconf.DefaultPaths{}.NewConfigPath()
}

// resolveHistoryPath picks the last-applied state path: the -old flag
// when given, the standard defaults otherwise.
func resolveHistoryPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return sysconf.DefaultPaths{}.OldConfigPath()
}
