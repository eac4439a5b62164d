// Package sysexec implements the executor: running a shell
// script or argv against the host and surfacing a non-zero exit as a
// typed failure. A preview variant prints the would-be command without
// running it.
package sysexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/chrisskorka/sysconf/sysconferrors"
)

// Executor exposes the two invocation shapes the engine needs: a quoted
// argv and a raw shell script. Both print the command verbatim before
// running it.
type Executor interface {
	RunCommand(ctx context.Context, argv []string) error
	RunShell(ctx context.Context, script string) error
}

// LiveExecutor spawns real child processes. Output and stdin are
// connected to Out/In so the user sees live command output (e.g. a
// package manager's progress bar) and can answer any prompt the command
// itself makes.
type LiveExecutor struct {
	Out io.Writer
	In  io.Reader
}

// NewLiveExecutor returns an executor writing command echoes to out.
func NewLiveExecutor(out io.Writer, in io.Reader) *LiveExecutor {
	return &LiveExecutor{Out: out, In: in}
}

func (e *LiveExecutor) RunCommand(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("sysexec: empty argv")
	}
	display := QuoteArgv(argv)
	fmt.Fprintln(e.Out, display)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return e.run(cmd, display)
}

func (e *LiveExecutor) RunShell(ctx context.Context, script string) error {
	fmt.Fprintln(e.Out, script)

	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	return e.run(cmd, script)
}

func (e *LiveExecutor) run(cmd *exec.Cmd, display string) error {
	var stderr bytes.Buffer
	cmd.Stdout = e.Out
	cmd.Stderr = io.MultiWriter(e.Out, &stderr)
	cmd.Stdin = e.In

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &sysconferrors.CommandFailure{
			Cmdline:  display,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}
	return &sysconferrors.CommandFailure{Cmdline: display, ExitCode: -1, Cause: err}
}

// PreviewExecutor prints the would-be command and returns success without
// any side effect, used by the `preview` CLI subcommand and the MCP
// preview tool.
type PreviewExecutor struct {
	Out io.Writer
}

// NewPreviewExecutor returns an executor that only prints.
func NewPreviewExecutor(out io.Writer) *PreviewExecutor {
	return &PreviewExecutor{Out: out}
}

func (e *PreviewExecutor) RunCommand(_ context.Context, argv []string) error {
	fmt.Fprintln(e.Out, QuoteArgv(argv))
	return nil
}

func (e *PreviewExecutor) RunShell(_ context.Context, script string) error {
	fmt.Fprintln(e.Out, script)
	return nil
}

// QuoteArgv renders argv as a single POSIX-shell-compatible display line,
// single-quoting any element that contains whitespace or shell
// metacharacters.
func QuoteArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`!*?[]{}()<>|&;~#") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
