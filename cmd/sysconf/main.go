package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/cmd/sysconf/commands"
	"github.com/chrisskorka/sysconf/internal/mcpserver"
	"github.com/chrisskorka/sysconf/sysconferrors"
)

// validCommands lists all valid command names for typo suggestions
var validCommands = []string{
	"show", "preview", "apply", "list-domains", "mcp", "version", "help",
}

// levenshteinDistance calculates the minimum edit distance between two strings
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// suggestCommand returns the closest matching command if the edit distance is <= 2
func suggestCommand(input string) string {
	var bestMatch string
	bestDistance := 3 // Only suggest if distance <= 2

	for _, cmd := range validCommands {
		dist := levenshteinDistance(input, cmd)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = cmd
		}
	}

	return bestMatch
}

// exitCode maps a command error to the process exit status: 3 for parse
// failures, 2 for a run that ended early, 1 for anything else.
func exitCode(err error) int {
	var parseErr *sysconferrors.ParseError
	if errors.As(err, &parseErr) {
		return 3
	}
	if errors.Is(err, commands.ErrIncomplete) {
		return 2
	}
	return 1
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("sysconf %s\n", sysconf.Version())
		fmt.Printf("commit: %s\n", sysconf.Commit())
		fmt.Printf("built: %s\n", sysconf.BuildTime())
		fmt.Printf("go: %s\n", sysconf.GoVersion())
	case "help", "-h", "--help":
		printUsage()
	case "show":
		if err := commands.HandleShow(os.Args[2:]); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	case "preview":
		if err := commands.HandlePreview(ctx, os.Args[2:]); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	case "apply":
		if err := commands.HandleApply(ctx, os.Args[2:]); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	case "list-domains":
		if err := commands.HandleListDomains(os.Args[2:]); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	case "mcp":
		if err := mcpserver.Run(ctx); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sysconf - Declarative Linux User-Space Configuration

Usage:
  sysconf <command> [options]

Commands:
  show          Parse and display a configuration document
  preview       Print the commands apply would run, without running them
  apply         Reconcile the host with the target document
  list-domains  List built-in and user-declared domain keys
  mcp           Start an MCP server over stdio
  version       Show version information
  help          Show this help message

Examples:
  sysconf show
  sysconf preview my-config.yaml
  sysconf apply
  sysconf apply --non-interactive my-config.yaml
  sysconf list-domains --config my-config.yaml
  cat config.yaml | sysconf show -

Run 'sysconf <command> --help' for more information on a command.`)
}
