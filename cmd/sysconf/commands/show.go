package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
)

// ShowFlags contains flags for the show command.
type ShowFlags struct {
	Raw bool
}

// SetupShowFlags creates and configures a FlagSet for the show command.
func SetupShowFlags() (*flag.FlagSet, *ShowFlags) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	flags := &ShowFlags{}

	fs.BoolVar(&flags.Raw, "raw", false, "print the re-rendered document instead of a summary")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: sysconf show [flags] [file|-]\n\n")
		Writef(fs.Output(), "Parse a configuration document and display it. Without a file argument the\n")
		Writef(fs.Output(), "default target document is shown; use '-' to read from stdin.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  sysconf show\n")
		Writef(fs.Output(), "  sysconf show my-config.yaml\n")
		Writef(fs.Output(), "  sysconf show --raw my-config.yaml\n")
		Writef(fs.Output(), "  cat config.yaml | sysconf show -\n")
	}

	return fs, flags
}

// HandleShow executes the show command.
func HandleShow(args []string) error {
	fs, flags := SetupShowFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("show accepts at most one file path")
	}

	data, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	builtins := domain.NewRegistry()
	cfg, err := document.Parse(data, builtins)
	if err != nil {
		return err
	}

	if flags.Raw {
		rendered, err := document.Render(cfg, builtins)
		if err != nil {
			return err
		}
		Writef(os.Stdout, "%s", rendered)
		return nil
	}

	printSummary(os.Stdout, cfg)
	return nil
}

func readDocument(arg string) ([]byte, error) {
	if arg == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := sysconf.OSFileReader{}.Read(resolveTargetPath(arg))
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// printSummary renders the parsed config grouped per domain, headings
// title-cased for readability ("apt-repository" -> "Apt Repository").
func printSummary(w io.Writer, cfg *document.SystemConfig) {
	title := cases.Title(language.English)

	if len(cfg.BeforeActions) > 0 {
		Writef(w, "Before:\n")
		for _, s := range cfg.BeforeActions {
			Writef(w, "  %s\n", s)
		}
	}

	lastDomain := ""
	for _, e := range cfg.Entries {
		if e.DomainKey != lastDomain {
			Writef(w, "%s:\n", title.String(strings.ReplaceAll(e.DomainKey, "-", " ")))
			lastDomain = e.DomainKey
		}
		if len(e.Path) > 0 {
			Writef(w, "  %s: %s\n", e.Path.String(), e.Value.AsDisplayString())
		} else {
			Writef(w, "  %s\n", e.Value.AsDisplayString())
		}
	}

	if len(cfg.AfterActions) > 0 {
		Writef(w, "After:\n")
		for _, s := range cfg.AfterActions {
			Writef(w, "  %s\n", s)
		}
	}

	if len(cfg.Entries) == 0 && len(cfg.BeforeActions) == 0 && len(cfg.AfterActions) == 0 {
		Writef(w, "Empty configuration.\n")
	}
}
