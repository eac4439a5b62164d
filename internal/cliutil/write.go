// Package cliutil provides small output helpers shared by the CLI
// subcommands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer. Progress text is best
// effort: a failed write is logged to stderr rather than interrupting a
// reconcile run.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
