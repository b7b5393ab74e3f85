package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

// ParamDef defines a tool parameter
type ParamDef struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Pattern     string
}

// ParamType represents the type of a parameter
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeBoolean ParamType = "boolean"
	ParamTypeNumber  ParamType = "number"
	ParamTypeInteger ParamType = "integer"
	ParamTypeObject  ParamType = "object"
	// ParamTypeIdentifier is a numeric Wise id accepted as a digit string or an integer.
	ParamTypeIdentifier ParamType = "identifier"
)

const identifierPattern = `^[0-9]+$`

// ActionFunc executes a tool against the Wise API and returns the provider object.
type ActionFunc func(ctx context.Context, client wise.API, wctx config.Context, args map[string]any) (any, error)

// ToolDef defines a tool that can be converted to different formats (MCP, agent SDKs, etc.)
type ToolDef struct {
	Name        string
	Description string
	Title       string
	Params      []ParamDef
	// Actions lists the permissions a configuration must grant to expose the tool.
	Actions     map[config.Resource][]config.Permission
	Action      ActionFunc
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	OpenWorld   bool
}

// Allowed reports whether cfg grants every permission the tool requires.
func (d ToolDef) Allowed(cfg config.Configuration) bool {
	return config.IsToolAllowed(d.Actions, cfg)
}

// InputSchema builds the JSON Schema of the tool arguments.
func (d ToolDef) InputSchema() *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(d.Params))
	var required []string

	for _, param := range d.Params {
		schema := &jsonschema.Schema{
			Description: param.Description,
		}

		switch param.Type {
		case ParamTypeIdentifier:
			schema.Types = []string{"string", "integer"}
			schema.Pattern = identifierPattern
		case ParamTypeObject:
			schema.Type = "object"
		default:
			schema.Type = string(param.Type)
			if param.Pattern != "" {
				schema.Pattern = param.Pattern
			}
		}

		properties[param.Name] = schema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	inputSchema := &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		// Marshals as "additionalProperties": false.
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}

	if len(required) > 0 {
		inputSchema.Required = required
	}

	return inputSchema
}

// RawInputSchema returns the JSON encoding of InputSchema.
func (d ToolDef) RawInputSchema() (json.RawMessage, error) {
	raw, err := json.Marshal(d.InputSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema of %s: %w", d.Name, err)
	}
	return raw, nil
}

// ToMCPTool converts a ToolDef to an mcp.Tool
func (d ToolDef) ToMCPTool() (mcp.Tool, error) {
	raw, err := d.RawInputSchema()
	if err != nil {
		return mcp.Tool{}, err
	}

	tool := mcp.NewTool(d.Name,
		mcp.WithDescription(d.Description),
		mcp.WithTitleAnnotation(d.Title),
		mcp.WithReadOnlyHintAnnotation(d.ReadOnly),
		mcp.WithDestructiveHintAnnotation(d.Destructive),
		mcp.WithIdempotentHintAnnotation(d.Idempotent),
		mcp.WithOpenWorldHintAnnotation(d.OpenWorld),
	)

	// The raw schema carries identifier unions that the typed builder cannot express.
	tool.InputSchema = mcp.ToolInputSchema{}
	tool.RawInputSchema = raw

	return tool, nil
}
