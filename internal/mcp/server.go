package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/termcard/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"card_generate": {
		def:     generateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerate },
	},
	"card_themes": {
		def:     themesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleThemes },
	},
}

var generateToolDef = mcp.NewTool("card_generate",
	mcp.WithDescription("Generate a terminal profile card for a GitHub username: a themed shell script plus a one-line command that reproduces the card."),
	mcp.WithString("username",
		mcp.Required(),
		mcp.Description("GitHub username to render"),
	),
	mcp.WithString("theme",
		mcp.Description("Card theme: clean, linux, cowsay, or figlet. Unknown values fall back to clean."),
	),
	mcp.WithBoolean("upload",
		mcp.Description("Upload the script to the paste host for a hosted one-liner (default true; failure falls back to an inline command)"),
	),
)

var themesToolDef = mcp.NewTool("card_themes",
	mcp.WithDescription("List the available card themes."),
)

// NewServer creates a new MCP server with termcard tools registered.
func NewServer(gen *ops.Generator, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"termcard",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(gen)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(gen *ops.Generator, version string) error {
	return server.ServeStdio(NewServer(gen, version))
}
