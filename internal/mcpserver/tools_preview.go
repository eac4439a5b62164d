package mcpserver

import (
	"bytes"
	"context"
	"strings"

	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/engine"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/sysexec"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type previewInput struct {
	Target documentInput  `json:"target"        jsonschema:"The target configuration document"`
	Old    *documentInput `json:"old,omitempty" jsonschema:"Explicit base state to diff against; defaults to the recorded last-applied state"`
}

type previewOutput struct {
	Changed  bool     `json:"changed"`
	Commands []string `json:"commands,omitempty"`
}

func handlePreview(ctx context.Context, _ *mcp.CallToolRequest, input previewInput) (*mcp.CallToolResult, previewOutput, error) {
	builtins := domain.NewRegistry()

	oldCfg, err := resolveBase(input.Old, builtins)
	if err != nil {
		return errResult(err), previewOutput{}, nil
	}
	newCfg, err := input.Target.resolve(builtins)
	if err != nil {
		return errResult(err), previewOutput{}, nil
	}

	var buf bytes.Buffer
	eng := engine.New(oldCfg, newCfg, builtins,
		sysexec.NewPreviewExecutor(&buf), errorhandler.NonInteractiveErrorHandler{},
		engine.WithOut(&buf))
	if _, err := eng.Run(ctx); err != nil {
		return errResult(err), previewOutput{}, nil
	}

	commands := splitCommandLines(buf.String())
	noChanges := len(commands) == 1 && commands[0] == "# No changes required."
	if noChanges {
		commands = nil
	}
	return nil, previewOutput{Changed: !noChanges && len(commands) > 0, Commands: commands}, nil
}

func resolveBase(old *documentInput, builtins *domain.Registry) (*document.SystemConfig, error) {
	if old != nil {
		return old.resolve(builtins)
	}
	return loadHistory(builtins)
}

func splitCommandLines(out string) []string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	filtered := makeSlice[string](len(lines))
	for _, line := range lines {
		if line != "" {
			filtered = append(filtered, line)
		}
	}
	return filtered
}
