package toolkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/metrics"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/resultutil"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

var (
	ErrUnknownMethod    = errors.New("unknown method")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Options configures a Toolkit.
type Options struct {
	// APIKey authenticates against the Wise API. Ignored when a client is given.
	APIKey string
	// Host overrides the Wise API base URL.
	Host string
	// Configuration selects the exposed tools and the default context.
	// A nil configuration exposes no tools.
	Configuration *config.Configuration
	// Client replaces the Wise API client built from APIKey and Host.
	Client wise.API
	// ClientFromContext resolves the Wise API client per call, e.g. from
	// request credentials. It takes precedence over Client and APIKey.
	ClientFromContext func(ctx context.Context) (wise.API, error)
	// Metrics records tool calls when set.
	Metrics *metrics.Metrics
}

// Toolkit dispatches tool calls to the Wise API. It is safe for concurrent use.
type Toolkit struct {
	client            wise.API
	clientFromContext func(ctx context.Context) (wise.API, error)
	context           config.Context
	tools             []tools.ToolDef
	schemas           map[string]*gojsonschema.Schema
	metrics           *metrics.Metrics
}

// New builds a toolkit exposing the tools allowed by opts.Configuration.
func New(opts Options) (*Toolkit, error) {
	cfg := opts.Configuration.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil && opts.ClientFromContext == nil {
		c, err := wise.NewClient(wise.Config{APIKey: opts.APIKey, Host: opts.Host})
		if err != nil {
			return nil, err
		}
		client = c
	}

	allowed := tools.Filter(cfg)
	schemas := make(map[string]*gojsonschema.Schema, len(allowed))
	for _, tool := range allowed {
		raw, err := tool.RawInputSchema()
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to compile input schema of %s: %w", tool.Name, err)
		}
		schemas[tool.Name] = schema
	}

	opts.Metrics.SetToolsExposed(len(allowed))
	slog.Info("Toolkit initialized", "tools", len(allowed), "contextProfile", cfg.Context.ProfileID != "")

	return &Toolkit{
		client:            client,
		clientFromContext: opts.ClientFromContext,
		context:           cfg.Context,
		tools:             allowed,
		schemas:           schemas,
		metrics:           opts.Metrics,
	}, nil
}

// Tools returns the allowed tools in registry order.
func (t *Toolkit) Tools() []tools.ToolDef {
	return append([]tools.ToolDef(nil), t.tools...)
}

// Context returns the context threaded into every tool call.
func (t *Toolkit) Context() config.Context {
	return t.context
}

// Lookup returns the allowed tool with the given name.
func (t *Toolkit) Lookup(method string) (tools.ToolDef, bool) {
	for _, tool := range t.tools {
		if tool.Name == method {
			return tool, true
		}
	}
	return tools.ToolDef{}, false
}

// Run validates args against the tool schema and executes the tool.
func (t *Toolkit) Run(ctx context.Context, method string, args map[string]any) *resultutil.Result {
	start := time.Now()
	result, outcome := t.run(ctx, method, args)
	t.metrics.ObserveToolCall(method, outcome, time.Since(start))

	if result.IsError() {
		slog.Warn("tool call failed", "method", method, "outcome", outcome, "error", result.Error)
	} else {
		slog.Debug("tool call succeeded", "method", method, "result", result.JSONText)
	}
	return result
}

func (t *Toolkit) run(ctx context.Context, method string, args map[string]any) (*resultutil.Result, string) {
	tool, ok := t.Lookup(method)
	if !ok {
		return resultutil.NewErrorResult(fmt.Errorf("%w %q", ErrUnknownMethod, method)), metrics.OutcomeInvalidArgument
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := validate(t.schemas[method], args); err != nil {
		return resultutil.NewErrorResult(err), metrics.OutcomeInvalidArgument
	}

	client := t.client
	if t.clientFromContext != nil {
		c, err := t.clientFromContext(ctx)
		if err != nil {
			return resultutil.NewErrorResult(err), metrics.OutcomeError
		}
		client = c
	}

	out, err := tool.Action(ctx, client, t.context, args)
	if err != nil {
		return resultutil.NewErrorResult(err), classify(err)
	}

	result := resultutil.NewSuccessResult(out)
	if result.IsError() {
		return result, metrics.OutcomeError
	}
	return result, metrics.OutcomeSuccess
}

func classify(err error) string {
	for _, target := range []error{
		tools.ErrProfileIDRequired,
		tools.ErrConflictingAmounts,
		tools.ErrMissingAmount,
		tools.ErrInvalidIdentifier,
		tools.ErrMissingField,
	} {
		if errors.Is(err, target) {
			return metrics.OutcomeInvalidArgument
		}
	}
	return metrics.OutcomeError
}

func validate(schema *gojsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidArguments, strings.Join(msgs, "; "))
	}
	return nil
}
