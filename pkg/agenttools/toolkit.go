// Package agenttools exposes the Wise tools to agent frameworks.
//
// Tools follow the langchaingo tool shape (Name, Description, Call) and can
// be handed to the Anthropic and OpenAI SDKs as tool definitions. Unlike the
// MCP server, errors are returned to the caller.
package agenttools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/metrics"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/toolkit"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

// Option customizes NewToolkit.
type Option func(*toolkit.Options)

// WithClient replaces the Wise API client.
func WithClient(client wise.API) Option {
	return func(o *toolkit.Options) {
		o.Client = client
	}
}

// WithMetrics records tool calls in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *toolkit.Options) {
		o.Metrics = m
	}
}

// Toolkit holds the tools allowed by a configuration.
type Toolkit struct {
	core  *toolkit.Toolkit
	tools []*Tool
}

// NewToolkit builds the tools allowed by cfg against the Wise API at host.
// An empty host selects the sandbox API.
func NewToolkit(apiKey, host string, cfg *config.Configuration, opts ...Option) (*Toolkit, error) {
	o := toolkit.Options{
		APIKey:        apiKey,
		Host:          host,
		Configuration: cfg,
	}
	for _, opt := range opts {
		opt(&o)
	}

	core, err := toolkit.New(o)
	if err != nil {
		return nil, err
	}

	defs := core.Tools()
	agentTools := make([]*Tool, 0, len(defs))
	for _, def := range defs {
		raw, err := def.RawInputSchema()
		if err != nil {
			return nil, err
		}
		var schema map[string]any
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("failed to decode input schema of %s: %w", def.Name, err)
		}
		if _, ok := schema["properties"]; !ok {
			schema["properties"] = map[string]any{}
		}
		agentTools = append(agentTools, &Tool{def: def, core: core, schema: schema})
	}

	return &Toolkit{core: core, tools: agentTools}, nil
}

// GetTools returns the allowed tools in registry order.
func (t *Toolkit) GetTools() []*Tool {
	return append([]*Tool(nil), t.tools...)
}

// Lookup returns the allowed tool with the given name.
func (t *Toolkit) Lookup(name string) (*Tool, bool) {
	for _, tool := range t.tools {
		if tool.Name() == name {
			return tool, true
		}
	}
	return nil, false
}

// Execute runs the tool named by a model tool call with its raw JSON input.
func (t *Toolkit) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	tool, ok := t.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w %q", toolkit.ErrUnknownMethod, name)
	}
	return tool.Call(ctx, string(input))
}

// AnthropicTools returns the allowed tools as Anthropic Messages API tool definitions.
func (t *Toolkit) AnthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(t.tools))
	for _, tool := range t.tools {
		out = append(out, tool.AnthropicTool())
	}
	return out
}

// OpenAITools returns the allowed tools as OpenAI chat completion function tools.
func (t *Toolkit) OpenAITools() []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(t.tools))
	for _, tool := range t.tools {
		out = append(out, tool.OpenAITool())
	}
	return out
}

// Tool is a single Wise operation callable by an agent.
type Tool struct {
	def    tools.ToolDef
	core   *toolkit.Toolkit
	schema map[string]any
}

// Name returns the method name of the tool, e.g. create_transfer.
func (t *Tool) Name() string {
	return t.def.Name
}

// Title returns the display name of the tool.
func (t *Tool) Title() string {
	return t.def.Title
}

// Description returns the prompt describing the tool to a model.
func (t *Tool) Description() string {
	return t.def.Description
}

// InputSchema returns a copy of the JSON Schema of the tool arguments.
func (t *Tool) InputSchema() map[string]any {
	return cloneSchema(t.schema)
}

// Invoke runs the tool and returns the JSON encoded Wise response.
func (t *Tool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	return t.core.Run(ctx, t.def.Name, args).ToAgentResult()
}

// Call runs the tool with a JSON object string as input. An empty input means no arguments.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	args := map[string]any{}
	if strings.TrimSpace(input) != "" {
		// Numbers stay json.Number so identifiers above 2^53 keep every digit.
		dec := json.NewDecoder(strings.NewReader(input))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return "", fmt.Errorf("%w: input must be a JSON object: %w", toolkit.ErrInvalidArguments, err)
		}
		if dec.More() {
			return "", fmt.Errorf("%w: input must be a single JSON object", toolkit.ErrInvalidArguments)
		}
	}
	return t.Invoke(ctx, args)
}

// AnthropicTool returns the tool as an Anthropic tool definition.
func (t *Tool) AnthropicTool() anthropic.ToolUnionParam {
	toolParam := anthropic.ToolParam{
		Name:        t.def.Name,
		Description: anthropic.String(t.def.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: cloneValue(t.schema["properties"]),
		},
	}

	if required, ok := t.schema["required"].([]any); ok {
		toolParam.InputSchema.Required = make([]string, 0, len(required))
		for _, r := range required {
			if name, ok := r.(string); ok {
				toolParam.InputSchema.Required = append(toolParam.InputSchema.Required, name)
			}
		}
	}

	return anthropic.ToolUnionParam{OfTool: &toolParam}
}

// OpenAITool returns the tool as an OpenAI function tool.
func (t *Tool) OpenAITool() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: openai.FunctionDefinitionParam{
			Name:        t.def.Name,
			Description: openai.String(t.def.Description),
			Parameters:  openai.FunctionParameters(cloneSchema(t.schema)),
		},
	}
}

func cloneSchema(schema map[string]any) map[string]any {
	cloned, _ := cloneValue(schema).(map[string]any)
	return cloned
}

// cloneValue deep copies the maps and slices of a decoded JSON value.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
