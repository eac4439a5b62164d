// Package runner wires the full reconcile flow used by the CLI's apply and
// preview commands: read the last-applied and target documents, parse them,
// drive the engine, render the resulting state, and persist it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/engine"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/sysconferrors"
	"github.com/chrisskorka/sysconf/sysexec"
)

// Options configures one reconcile run.
type Options struct {
	// OldPath is the history document (last applied state). A missing
	// file is treated as the empty configuration: on a first run there is
	// no history yet.
	OldPath string

	// NewPath is the user-edited target document.
	NewPath string

	// PersistPath receives the rendered post-run state. Empty disables
	// persistence (preview runs).
	PersistPath string

	Reader   sysconf.FileReader
	Writer   sysconf.FileWriter
	Builtins *domain.Registry
	Executor sysexec.Executor
	Handler  errorhandler.ErrorHandler

	// Out receives user-facing progress text. Defaults to os.Stdout.
	Out    io.Writer
	Logger sysconf.Logger
}

// Result is what a reconcile run leaves behind.
type Result struct {
	// Config is the state the host actually ended up in, including
	// partial application.
	Config *document.SystemConfig

	// Rendered is Config serialized back to document form.
	Rendered []byte

	// Persisted reports whether Rendered was written to PersistPath.
	Persisted bool

	// Completed reports whether every step of the plan committed: the
	// final state equals the target document. False after an abort,
	// interruption, or mid-plan failure.
	Completed bool
}

// emptyDocument is what a missing history file parses as.
const emptyDocument = "version: '1'\n"

// Reconcile runs the whole flow. A PersistFailure is returned together
// with a non-nil Result: the host has already been modified, so callers
// still get the rendered content to surface to the user (and a non-zero
// exit), per the persistence policy of the engine.
func Reconcile(ctx context.Context, opts Options) (*Result, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = sysconf.NopLogger{}
	}
	if opts.Builtins == nil {
		opts.Builtins = domain.NewRegistry()
	}

	oldCfg, err := readConfig(opts.Reader, opts.OldPath, opts.Builtins, true)
	if err != nil {
		return nil, fmt.Errorf("runner: reading last applied state: %w", err)
	}
	newCfg, err := readConfig(opts.Reader, opts.NewPath, opts.Builtins, false)
	if err != nil {
		return nil, fmt.Errorf("runner: reading target document: %w", err)
	}

	eng := engine.New(oldCfg, newCfg, opts.Builtins, opts.Executor, opts.Handler,
		engine.WithOut(opts.Out), engine.WithLogger(opts.Logger))
	current, err := eng.Run(ctx)
	if err != nil {
		return nil, err
	}

	rendered, err := document.Render(current, opts.Builtins)
	if err != nil {
		return nil, fmt.Errorf("runner: rendering applied state: %w", err)
	}

	result := &Result{Config: current, Rendered: rendered, Completed: document.Equal(current, newCfg)}
	if opts.PersistPath == "" {
		return result, nil
	}

	if err := opts.Writer.Write(opts.PersistPath, string(rendered)); err != nil {
		var pf *sysconferrors.PersistFailure
		if !errors.As(err, &pf) {
			err = &sysconferrors.PersistFailure{Path: opts.PersistPath, Content: string(rendered), Cause: err}
		}
		opts.Logger.Error("persisting applied state failed", "path", opts.PersistPath, "error", err)
		return result, err
	}
	result.Persisted = true
	opts.Logger.Info("persisted applied state", "path", opts.PersistPath)
	return result, nil
}

// Load parses a single document off disk, for read-only inspection.
func Load(reader sysconf.FileReader, path string, builtins *domain.Registry) (*document.SystemConfig, error) {
	return readConfig(reader, path, builtins, false)
}

func readConfig(reader sysconf.FileReader, path string, builtins *domain.Registry, missingOK bool) (*document.SystemConfig, error) {
	data, err := reader.Read(path)
	if err != nil {
		if missingOK && errors.Is(err, os.ErrNotExist) {
			data = emptyDocument
		} else {
			return nil, err
		}
	}
	return document.Parse([]byte(data), builtins)
}
