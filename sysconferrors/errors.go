// Package sysconferrors provides structured error types for the
// reconciliation engine.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), letting the error handler and engine distinguish categories
// of failure and choose the correct propagation policy.
//
// # Error Categories
//
//   - ParseError: document schema failures (missing version, unknown domain key, duplicate EntryId)
//   - CommandFailure: a non-zero exit from the executor; caught by the error handler
//   - TransitionerViolation: an internal bug — committing an action the transitioner cannot accept
//   - PersistFailure: the final history-file write failed
//
// # Usage with errors.As
//
//	err := executor.RunShell(ctx, script)
//	var cf *sysconferrors.CommandFailure
//	if errors.As(err, &cf) {
//	    fmt.Println(cf.ExitCode, cf.Stderr)
//	}
package sysconferrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document failed to parse against the schema.
	ErrParse = errors.New("parse error")

	// ErrCommandFailure indicates an executor run returned a non-zero status.
	ErrCommandFailure = errors.New("command failure")

	// ErrTransitionerViolation indicates an internal bug: an action was
	// committed that the transitioner cannot accept.
	ErrTransitionerViolation = errors.New("transitioner violation")

	// ErrPersistFailure indicates the final history-file write failed.
	ErrPersistFailure = errors.New("persist failure")
)

// ParseError represents a failure to parse a configuration document.
type ParseError struct {
	// Path is the file path or source identifier.
	Path string
	// Message describes the parsing failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// CommandFailure represents an executor invocation that exited non-zero or
// failed to spawn.
type CommandFailure struct {
	// Cmdline is the command as displayed to the user before running.
	Cmdline string
	// ExitCode is the child process exit status. -1 if the process never
	// started (spawn error).
	ExitCode int
	// Stderr is captured standard error output, if any was captured.
	Stderr string
	// Cause is the underlying spawn error, if the process never started.
	Cause error
}

func (e *CommandFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("command failed to start: %s: %v", e.Cmdline, e.Cause)
	}
	msg := fmt.Sprintf("command exited %d: %s", e.ExitCode, e.Cmdline)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandFailure) Unwrap() error { return e.Cause }

func (e *CommandFailure) Is(target error) bool { return target == ErrCommandFailure }

// TransitionerViolation represents an attempt to commit an action the
// sequence transitioner cannot accept: an old value absent from the
// remaining-old side, or a new value already present on the accumulated-new
// side. This indicates a bug in action-plan construction, not user error.
type TransitionerViolation struct {
	Message string
	Cause   error
}

func (e *TransitionerViolation) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transitioner violation: %s: %v", e.Message, e.Cause)
	}
	return "transitioner violation: " + e.Message
}

func (e *TransitionerViolation) Unwrap() error { return e.Cause }

func (e *TransitionerViolation) Is(target error) bool { return target == ErrTransitionerViolation }

// PersistFailure represents a failure to write the final rendered document
// back to the history file. Not fatal to the run: the system has already
// been modified by the time persistence is attempted.
type PersistFailure struct {
	Path    string
	Content string
	Cause   error
}

func (e *PersistFailure) Error() string {
	return fmt.Sprintf("failed to persist history to %s: %v", e.Path, e.Cause)
}

func (e *PersistFailure) Unwrap() error { return e.Cause }

func (e *PersistFailure) Is(target error) bool { return target == ErrPersistFailure }
