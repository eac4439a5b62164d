// Package errorhandler implements the policy object wrapping
// each action run, turning a CommandFailure into a user decision (retry,
// skip, abort, or mark-as-successful).
package errorhandler

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/chrisskorka/sysconf/sysconferrors"
)

// Outcome is the result try_run hands back to the reconciliation engine.
type Outcome int

const (
	Success Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// ErrorHandler runs task and reports what happened. Any error not in the
// handler's whitelist propagates unchanged rather than being converted to
// an Outcome — only CommandFailure is ever caught.
type ErrorHandler interface {
	TryRun(task func() error) (Outcome, error)
}

// maxAttempts bounds the prompting handler's retry loop.
const maxAttempts = 5

// PromptingErrorHandler catches a CommandFailure, shows it to the user,
// and asks Retry/Skip/Abort/Mark-as-successful, up to maxAttempts times.
// An unrecognized answer re-prompts without consuming an attempt.
type PromptingErrorHandler struct {
	Out io.Writer
	In  *bufio.Reader
}

// NewPromptingErrorHandler wraps r for line-oriented prompt reads.
func NewPromptingErrorHandler(out io.Writer, in io.Reader) *PromptingErrorHandler {
	return &PromptingErrorHandler{Out: out, In: bufio.NewReader(in)}
}

func (h *PromptingErrorHandler) TryRun(task func() error) (Outcome, error) {
attempts:
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := task()
		if err == nil {
			return Success, nil
		}

		var cf *sysconferrors.CommandFailure
		if !errors.As(err, &cf) {
			return Failed, err
		}

		fmt.Fprintf(h.Out, "command failed: %v\n", cf)
		for {
			fmt.Fprint(h.Out, "[r]etry / [s]kip / [a]bort / [m]ark as successful? ")
			line, readErr := h.In.ReadString('\n')
			if readErr != nil && line == "" {
				return Failed, fmt.Errorf("errorhandler: reading prompt response: %w", readErr)
			}
			switch normalizeAnswer(line) {
			case "r":
				continue attempts
			case "s":
				return Skipped, nil
			case "a":
				return Failed, nil
			case "m":
				return Success, nil
			default:
				fmt.Fprintln(h.Out, "unrecognized response, try again")
			}
		}
	}
	return Failed, nil
}

func normalizeAnswer(line string) string {
	s := ""
	for _, r := range line {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			continue
		}
		s += string(r)
	}
	switch s {
	case "retry", "r":
		return "r"
	case "skip", "s":
		return "s"
	case "abort", "a":
		return "a"
	case "mark", "m", "mark-as-successful":
		return "m"
	default:
		return s
	}
}

// NonInteractiveErrorHandler always aborts on the first CommandFailure and
// propagates anything else — used by `apply --non-interactive`, the
// `preview` subcommand, the MCP preview and apply tools, and tests.
type NonInteractiveErrorHandler struct{}

func (NonInteractiveErrorHandler) TryRun(task func() error) (Outcome, error) {
	err := task()
	if err == nil {
		return Success, nil
	}
	var cf *sysconferrors.CommandFailure
	if errors.As(err, &cf) {
		return Failed, nil
	}
	return Failed, err
}
