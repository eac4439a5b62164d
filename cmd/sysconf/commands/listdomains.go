package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
)

// ListDomainsFlags contains flags for the list-domains command.
type ListDomainsFlags struct {
	Config string
}

// SetupListDomainsFlags creates and configures a FlagSet for the
// list-domains command.
func SetupListDomainsFlags() (*flag.FlagSet, *ListDomainsFlags) {
	fs := flag.NewFlagSet("list-domains", flag.ContinueOnError)
	flags := &ListDomainsFlags{}

	fs.StringVar(&flags.Config, "config", "", "also list user domains declared by this document")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: sysconf list-domains [flags]\n\n")
		Writef(fs.Output(), "List every domain key a configuration document may use: the builtins, plus\n")
		Writef(fs.Output(), "any user domains declared by the document given via --config.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  sysconf list-domains\n")
		Writef(fs.Output(), "  sysconf list-domains --config my-config.yaml\n")
	}

	return fs, flags
}

// HandleListDomains executes the list-domains command.
func HandleListDomains(args []string) error {
	fs, flags := SetupListDomainsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("list-domains takes no positional arguments")
	}

	title := cases.Title(language.English)
	builtins := domain.NewRegistry()

	Writef(os.Stdout, "Built-in domains:\n")
	for _, key := range builtins.Keys() {
		d, _ := builtins.Builtin(key)
		Writef(os.Stdout, "  %-20s %s, depth %d  (%s)\n",
			key, d.Kind(), d.PathDepth(), title.String(strings.ReplaceAll(key, "-", " ")))
	}

	if flags.Config == "" {
		return nil
	}

	data, err := readDocument(flags.Config)
	if err != nil {
		return err
	}
	cfg, err := document.Parse(data, builtins)
	if err != nil {
		return err
	}
	if len(cfg.UserDomains) == 0 {
		return nil
	}

	Writef(os.Stdout, "User domains (%s):\n", flags.Config)
	for _, def := range cfg.UserDomains {
		Writef(os.Stdout, "  %-20s %s, depth %d\n", def.Key, def.Spec.Type, def.Spec.Depth)
	}
	return nil
}
