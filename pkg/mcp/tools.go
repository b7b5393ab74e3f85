package mcp

import (
	"encoding/json"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/toolkit"
)

// ToolSchemas returns the input schema of every tool exposed by tk, keyed by tool name.
func ToolSchemas(tk *toolkit.Toolkit) (map[string]json.RawMessage, error) {
	schemas := make(map[string]json.RawMessage)
	for _, def := range tk.Tools() {
		raw, err := def.RawInputSchema()
		if err != nil {
			return nil, err
		}
		schemas[def.Name] = raw
	}
	return schemas, nil
}
