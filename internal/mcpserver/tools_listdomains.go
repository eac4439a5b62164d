package mcpserver

import (
	"context"

	"github.com/chrisskorka/sysconf/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listDomainsInput struct {
	Document *documentInput `json:"document,omitempty" jsonschema:"Optional document whose declared user domains are included alongside the builtins"`
}

type listDomainsOutput struct {
	Builtins    []showDomainSpec `json:"builtins"`
	UserDomains []showDomainSpec `json:"user_domains,omitempty"`
}

func handleListDomains(_ context.Context, _ *mcp.CallToolRequest, input listDomainsInput) (*mcp.CallToolResult, listDomainsOutput, error) {
	builtins := domain.NewRegistry()

	output := listDomainsOutput{}
	for _, key := range builtins.Keys() {
		d, _ := builtins.Builtin(key)
		output.Builtins = append(output.Builtins, showDomainSpec{
			Key:   d.Key(),
			Kind:  d.Kind().String(),
			Depth: d.PathDepth(),
		})
	}

	if input.Document != nil {
		cfg, err := input.Document.resolve(builtins)
		if err != nil {
			return errResult(err), listDomainsOutput{}, nil
		}
		output.UserDomains = makeSlice[showDomainSpec](len(cfg.UserDomains))
		for _, def := range cfg.UserDomains {
			output.UserDomains = append(output.UserDomains, showDomainSpec{
				Key:   def.Key,
				Kind:  def.Spec.Type.String(),
				Depth: def.Spec.Depth,
			})
		}
	}

	return nil, output, nil
}
