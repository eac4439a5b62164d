package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/internal/runner"
	"github.com/chrisskorka/sysconf/sysconferrors"
	"github.com/chrisskorka/sysconf/sysexec"
)

// ErrIncomplete is returned by HandleApply when the run ended before
// every planned action committed (user abort, interruption, or a failing
// command in a non-interactive run). The partial state has already been
// persisted when this is returned.
var ErrIncomplete = errors.New("apply ended before all actions completed")

// ApplyFlags contains flags for the apply command.
type ApplyFlags struct {
	Old            string
	NonInteractive bool
	Verbose        bool
}

// SetupApplyFlags creates and configures a FlagSet for the apply command.
func SetupApplyFlags() (*flag.FlagSet, *ApplyFlags) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	flags := &ApplyFlags{}

	fs.StringVar(&flags.Old, "old", "", "diff against this document instead of the recorded last-applied state")
	fs.BoolVar(&flags.NonInteractive, "non-interactive", false, "abort on the first failing command instead of prompting")
	fs.BoolVar(&flags.Verbose, "v", false, "log engine diagnostics to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log engine diagnostics to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: sysconf apply [flags] [file]\n\n")
		Writef(fs.Output(), "Bring the host to the state the target document declares, then record the\n")
		Writef(fs.Output(), "actually-applied state in the history file. Failing commands prompt for\n")
		Writef(fs.Output(), "retry/skip/abort unless --non-interactive is set.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  sysconf apply\n")
		Writef(fs.Output(), "  sysconf apply my-config.yaml\n")
		Writef(fs.Output(), "  sysconf apply --non-interactive my-config.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All actions applied\n")
		Writef(fs.Output(), "  1    Unexpected error\n")
		Writef(fs.Output(), "  2    Run ended early; partial state persisted\n")
		Writef(fs.Output(), "  3    A document failed to parse\n")
	}

	return fs, flags
}

// HandleApply executes the apply command.
func HandleApply(ctx context.Context, args []string) error {
	fs, flags := SetupApplyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("apply accepts at most one file path")
	}

	var handler errorhandler.ErrorHandler = errorhandler.NewPromptingErrorHandler(os.Stdout, os.Stdin)
	if flags.NonInteractive {
		handler = errorhandler.NonInteractiveErrorHandler{}
	}

	var logger sysconf.Logger = sysconf.NopLogger{}
	if flags.Verbose {
		logger = sysconf.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	historyPath := resolveHistoryPath(flags.Old)
	result, err := runner.Reconcile(ctx, runner.Options{
		OldPath:     historyPath,
		NewPath:     resolveTargetPath(fs.Arg(0)),
		PersistPath: historyPath,
		Reader:      sysconf.OSFileReader{},
		Writer:      sysconf.OSFileWriter{},
		Executor:    sysexec.NewLiveExecutor(os.Stdout, os.Stdin),
		Handler:     handler,
		Out:         os.Stdout,
		Logger:      logger,
	})
	if err != nil {
		var pf *sysconferrors.PersistFailure
		if errors.As(err, &pf) && result != nil {
			// The host has already been modified; surface the state the
			// history file should have held so nothing is lost.
			Writef(os.Stderr, "could not write %s: %v\nThe applied state was:\n%s", pf.Path, pf.Cause, result.Rendered)
		}
		return err
	}

	if !result.Completed {
		return ErrIncomplete
	}
	return nil
}
