// Package sysconf is a declarative Linux user-space configuration manager.
//
// A user writes a target state as a structured YAML document: packages,
// desktop settings, symlinks, group memberships, file fragments, and
// pre/post shell scripts. sysconf compares that document to the last
// applied state (read from a history file) and computes the minimal
// ordered sequence of actions that turns the system from old to new,
// executes them against the host, and persists the resulting actually
// applied state back to the history file.
//
// # Overview
//
// The reconciliation engine is built from a small set of composable
// packages, leaves first:
//
//   - yamlvalue: the recursive YamlValue sum type and its YAML codec
//   - ordereddiff: order-preserving set difference over comparable elements
//   - transition: the monotonic old-to-new sequence transitioner
//   - flatten: nested-map flattening/building bounded by a path depth
//   - scripttemplate: positional ($key, $value, $old_value, $new_value)
//     shell script interpolation
//   - domain: the Domain abstraction (parse/render/diff-action), the
//     built-in domain table, and user-declared domains
//   - document: version-gated parsing/rendering between the YAML document
//     and a SystemConfig aggregate
//   - sysexec: the live and preview command executors
//   - errorhandler: the retry/skip/abort policy wrapping each action run
//   - engine: the reconciliation engine and config transitioner that tie
//     the above into a single apply/preview run
//
// This top-level package holds the external collaborator interfaces the
// engine consumes ([Logger], [Defaults], [FileReader], [FileWriter],
// [YamlCodec]) plus their default implementations, so that cmd/sysconf and
// internal/mcpserver share one place to wire a run together.
//
// # Quick Start
//
//	import (
//		"context"
//		"os"
//
//		"github.com/chrisskorka/sysconf"
//		"github.com/chrisskorka/sysconf/document"
//		"github.com/chrisskorka/sysconf/domain"
//		"github.com/chrisskorka/sysconf/engine"
//		"github.com/chrisskorka/sysconf/errorhandler"
//		"github.com/chrisskorka/sysconf/sysexec"
//	)
//
//	builtins := domain.NewRegistry()
//	reader := sysconf.OSFileReader{}
//	defaults := sysconf.DefaultPaths{}
//
//	oldData, _ := reader.Read(defaults.OldConfigPath())
//	newData, _ := reader.Read(defaults.NewConfigPath())
//	oldCfg, _ := document.Parse([]byte(oldData), builtins)
//	newCfg, _ := document.Parse([]byte(newData), builtins)
//
//	eng := engine.New(oldCfg, newCfg, builtins,
//		sysexec.NewLiveExecutor(os.Stdout, os.Stdin),
//		errorhandler.NewPromptingErrorHandler(os.Stdout, os.Stdin))
//	result, err := eng.Run(context.Background())
//
// # Error Handling
//
// Errors are typed via package sysconferrors ([sysconferrors.ParseError],
// [sysconferrors.CommandFailure], [sysconferrors.TransitionerViolation],
// [sysconferrors.PersistFailure]), each matching a sentinel through its Is
// method so callers can use errors.Is/errors.As. A CommandFailure during a run is routed through
// the configured errorhandler.ErrorHandler rather than returned directly;
// everything else propagates.
//
// # Command-Line Interface
//
// In addition to the library packages, sysconf provides a command-line
// interface:
//
//	# Show the parsed/rendered form of a document
//	sysconf show config.yaml
//
//	# Print the commands apply would run, without running them
//	sysconf preview
//
//	# Reconcile the host against config.yaml and persist the result
//	sysconf apply
//
//	# List every domain key the registry and a document know about
//	sysconf list-domains --config config.yaml
//
// Install the CLI:
//
//	go install github.com/chrisskorka/sysconf/cmd/sysconf@latest
package sysconf
