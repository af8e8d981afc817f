package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/ops"
	"github.com/hpungsan/termcard/internal/script"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	gen *ops.Generator
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(gen *ops.Generator) *Handlers {
	return &Handlers{gen: gen}
}

// GenerateRequest represents the arguments for card_generate.
type GenerateRequest struct {
	Username string `json:"username"`
	Theme    string `json:"theme,omitempty"`
	Upload   *bool  `json:"upload,omitempty"`
}

// HandleGenerate handles the card_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	upload := true
	if input.Upload != nil {
		upload = *input.Upload
	}

	out, err := h.gen.Generate(ctx, ops.GenerateInput{
		Username: input.Username,
		Theme:    input.Theme,
		Upload:   upload,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(out)
}

// HandleThemes handles the card_themes tool call.
func (h *Handlers) HandleThemes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"themes": script.Themes()})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cardErr, ok := err.(*errors.CardError); ok {
		errorObj := map[string]any{
			"code":    cardErr.Code,
			"message": cardErr.Message,
			"status":  cardErr.Status,
		}
		if cardErr.Code != errors.ErrInternal && cardErr.Details != nil {
			errorObj["details"] = cardErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
