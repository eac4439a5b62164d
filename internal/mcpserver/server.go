// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes sysconf capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/chrisskorka/sysconf"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `sysconf MCP server — inspects, previews, and applies declarative Linux user-space configuration.

Configuration: All defaults are configurable via SYSCONF_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SYSCONF_MCP_ALLOW_APPLY (default: false) — enable the apply tool; without it the server is read-only
- SYSCONF_MAX_INLINE_SIZE (default: 1048576) — maximum inline document content in bytes
- SYSCONF_HISTORY_PATH — override where apply reads/writes the last-applied state

Workflow: call preview first to see the exact commands a document would run against the recorded last-applied state, then apply to execute them. show parses and re-renders a single document; list_domains enumerates the domain keys a document may use.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "sysconf", Version: sysconf.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "show",
		Description: "Parse a configuration document and return a structural summary: version, before/after scripts, entries per domain, and declared user domains. The document is re-rendered to its canonical form so the output is stable regardless of input formatting.",
	}, handleShow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview",
		Description: "Compute the ordered command sequence that would bring the host from the last-applied state to the given target document, without running anything. Provide old to diff against an explicit base instead of the recorded history. Removals come first (reverse add order), then adds and updates in document order.",
	}, handlePreview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply",
		Description: "Execute the reconciliation plan against the host and persist the resulting state to the history file. Requires SYSCONF_MCP_ALLOW_APPLY=true. Runs non-interactively: the first failing command ends the run, and whatever succeeded up to that point is recorded as applied.",
	}, handleApply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_domains",
		Description: "List every domain key available to configuration documents: the built-in domains, plus any user domains declared by an optionally supplied document. Each result carries the domain kind (list or map) and path depth.",
	}, handleListDomains)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
