package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/internal/runner"
	"github.com/chrisskorka/sysconf/sysexec"
)

// PreviewFlags contains flags for the preview command.
type PreviewFlags struct {
	Old string
}

// SetupPreviewFlags creates and configures a FlagSet for the preview command.
func SetupPreviewFlags() (*flag.FlagSet, *PreviewFlags) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	flags := &PreviewFlags{}

	fs.StringVar(&flags.Old, "old", "", "diff against this document instead of the recorded last-applied state")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: sysconf preview [flags] [file]\n\n")
		Writef(fs.Output(), "Print the ordered command sequence that apply would run, without running\n")
		Writef(fs.Output(), "anything. Without a file argument the default target document is used.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  sysconf preview\n")
		Writef(fs.Output(), "  sysconf preview my-config.yaml\n")
		Writef(fs.Output(), "  sysconf preview --old last-applied.yaml my-config.yaml\n")
	}

	return fs, flags
}

// HandlePreview executes the preview command.
func HandlePreview(ctx context.Context, args []string) error {
	fs, flags := SetupPreviewFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("preview accepts at most one file path")
	}

	_, err := runner.Reconcile(ctx, runner.Options{
		OldPath:  resolveHistoryPath(flags.Old),
		NewPath:  resolveTargetPath(fs.Arg(0)),
		Reader:   sysconf.OSFileReader{},
		Writer:   sysconf.OSFileWriter{},
		Executor: sysexec.NewPreviewExecutor(os.Stdout),
		Handler:  errorhandler.NonInteractiveErrorHandler{},
		Out:      os.Stdout,
	})
	return err
}
