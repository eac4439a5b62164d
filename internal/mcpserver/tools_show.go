package mcpserver

import (
	"context"

	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type showInput struct {
	Document documentInput `json:"document" jsonschema:"The configuration document to inspect"`
}

type showEntry struct {
	Domain string `json:"domain"`
	Path   string `json:"path,omitempty"`
	Value  string `json:"value"`
}

type showDomainSpec struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Depth int    `json:"depth"`
}

type showOutput struct {
	Version       string           `json:"version"`
	BeforeScripts []string         `json:"before_scripts,omitempty"`
	AfterScripts  []string         `json:"after_scripts,omitempty"`
	EntryCount    int              `json:"entry_count"`
	Entries       []showEntry      `json:"entries,omitempty"`
	UserDomains   []showDomainSpec `json:"user_domains,omitempty"`
	Rendered      string           `json:"rendered"`
}

func handleShow(_ context.Context, _ *mcp.CallToolRequest, input showInput) (*mcp.CallToolResult, showOutput, error) {
	builtins := domain.NewRegistry()
	cfg, err := input.Document.resolve(builtins)
	if err != nil {
		return errResult(err), showOutput{}, nil
	}

	rendered, err := document.Render(cfg, builtins)
	if err != nil {
		return errResult(err), showOutput{}, nil
	}

	output := showOutput{
		Version:       document.SupportedVersion,
		BeforeScripts: cfg.BeforeActions,
		AfterScripts:  cfg.AfterActions,
		EntryCount:    len(cfg.Entries),
		Rendered:      string(rendered),
	}

	output.Entries = makeSlice[showEntry](len(cfg.Entries))
	for _, e := range cfg.Entries {
		output.Entries = append(output.Entries, showEntry{
			Domain: e.DomainKey,
			Path:   e.Path.String(),
			Value:  e.Value.AsDisplayString(),
		})
	}

	output.UserDomains = makeSlice[showDomainSpec](len(cfg.UserDomains))
	for _, def := range cfg.UserDomains {
		output.UserDomains = append(output.UserDomains, showDomainSpec{
			Key:   def.Key,
			Kind:  def.Spec.Type.String(),
			Depth: def.Spec.Depth,
		})
	}

	return nil, output, nil
}
