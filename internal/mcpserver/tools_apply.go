package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/engine"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/sysexec"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type applyInput struct {
	Target documentInput `json:"target" jsonschema:"The target configuration document to apply to the host"`
}

type applyOutput struct {
	Output      string `json:"output"`
	EntryCount  int    `json:"entry_count"`
	Persisted   bool   `json:"persisted"`
	HistoryPath string `json:"history_path"`
}

func handleApply(ctx context.Context, _ *mcp.CallToolRequest, input applyInput) (*mcp.CallToolResult, applyOutput, error) {
	if !cfg.AllowApply {
		return errResult(fmt.Errorf("apply is disabled; set SYSCONF_MCP_ALLOW_APPLY=true in the MCP client config to enable host mutation")), applyOutput{}, nil
	}

	builtins := domain.NewRegistry()
	oldCfg, err := loadHistory(builtins)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}
	newCfg, err := input.Target.resolve(builtins)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	// Non-interactive by necessity: there is no terminal on the far side
	// of an MCP session to answer a retry/skip/abort prompt.
	var buf bytes.Buffer
	eng := engine.New(oldCfg, newCfg, builtins,
		sysexec.NewLiveExecutor(&buf, bytes.NewReader(nil)), errorhandler.NonInteractiveErrorHandler{},
		engine.WithOut(&buf))
	current, err := eng.Run(ctx)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	rendered, err := document.Render(current, builtins)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	output := applyOutput{
		Output:      buf.String(),
		EntryCount:  len(current.Entries),
		HistoryPath: historyPath(),
	}
	if err := (sysconf.OSFileWriter{}).Write(historyPath(), string(rendered)); err != nil {
		output.Output += fmt.Sprintf("\npersisting applied state failed: %s\n%s", sanitizeError(err), rendered)
		return nil, output, nil
	}
	output.Persisted = true
	return nil, output, nil
}
