//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	mcpEndpoint = "/mcp"
)

// MCPClient wraps an MCP session against the server under test
type MCPClient struct {
	session *mcpsdk.ClientSession
}

// NewMCPClient connects to the streamable HTTP endpoint at baseURL
func NewMCPClient(ctx context.Context, baseURL string) (*MCPClient, error) {
	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "wise-mcp-e2e",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &mcpsdk.StreamableClientTransport{
		Endpoint: baseURL + mcpEndpoint,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server: %w", err)
	}
	return &MCPClient{session: session}, nil
}

// Close ends the MCP session
func (c *MCPClient) Close() error {
	return c.session.Close()
}

// ListToolNames returns the names of the tools advertised by the server
func (c *MCPClient) ListToolNames(t *testing.T) []string {
	t.Helper()

	result, err := c.session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to list tools: %v", err)
	}

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names
}

// CallTool calls an MCP tool and returns its text output and error flag
func (c *MCPClient) CallTool(t *testing.T, toolName string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := c.session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("Failed to call %s: %v", toolName, err)
	}

	var sb strings.Builder
	for _, content := range result.Content {
		if text, ok := content.(*mcpsdk.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String(), result.IsError
}
