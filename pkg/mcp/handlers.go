package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/toolkit"
)

// ToolHandler dispatches calls of the named tool to the toolkit.
// Failures are reported as error results, never as protocol errors.
func ToolHandler(tk *toolkit.Toolkit, method string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slog.Debug("MCP tool call", "method", method)
		return tk.Run(ctx, method, req.GetArguments()).ToMCPResult(method)
	}
}
