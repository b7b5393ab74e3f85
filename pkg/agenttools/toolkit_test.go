package agenttools

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/toolkit"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise/wisetest"
)

func newTestToolkit(t *testing.T, mock *wisetest.MockedAPI, cfg *config.Configuration) *Toolkit {
	t.Helper()
	tk, err := NewToolkit("", "", cfg, WithClient(mock))
	if err != nil {
		t.Fatalf("NewToolkit failed: %v", err)
	}
	return tk
}

func TestGetTools_Filtering(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, &config.Configuration{
		Actions: config.Actions{config.ResourceRecipients: {config.PermissionRead: true}},
	})

	var names []string
	for _, tool := range tk.GetTools() {
		names = append(names, tool.Name())
	}

	if !slices.Contains(names, "list_recipient_accounts") {
		t.Errorf("expected list_recipient_accounts in %v", names)
	}
	if slices.Contains(names, "create_transfer") {
		t.Errorf("create_transfer must be filtered out, got %v", names)
	}

	if _, err := tk.Execute(context.Background(), "create_transfer", nil); !errors.Is(err, toolkit.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestTool_Metadata(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, config.AllowAll(config.Context{}))

	tool, ok := tk.Lookup("create_transfer")
	if !ok {
		t.Fatal("expected create_transfer")
	}

	if tool.Title() != "Create Transfer" {
		t.Errorf("unexpected title %q", tool.Title())
	}
	if tool.Description() != tools.CreateTransferPrompt {
		t.Error("expected the create transfer prompt as description")
	}
	if tool.InputSchema()["type"] != "object" {
		t.Errorf("unexpected schema %v", tool.InputSchema())
	}

	noParams, _ := tk.Lookup("list_profiles")
	if _, ok := noParams.InputSchema()["properties"].(map[string]any); !ok {
		t.Errorf("expected empty properties object, got %v", noParams.InputSchema())
	}
}

func TestTool_Call(t *testing.T) {
	mock := &wisetest.MockedAPI{
		ListRecipientAccountsFunc: func(_ context.Context, params wise.ListRecipientAccountsParams) (*wise.PaginatedRecipients, error) {
			return &wise.PaginatedRecipients{
				Content: []wise.Recipient{{ID: 40000000, Currency: params.Currency, ProfileID: params.ProfileID}},
				Size:    1,
			}, nil
		},
	}
	tk := newTestToolkit(t, mock, config.AllowAll(config.Context{ProfileID: "25"}))
	tool, _ := tk.Lookup("list_recipient_accounts")

	out, err := tool.Call(context.Background(), `{"currency": "USD"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var page wise.PaginatedRecipients
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("output is not a recipient page: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ProfileID != 25 || page.Content[0].Currency != "USD" {
		t.Errorf("unexpected page %+v", page)
	}

	if _, err := tool.Call(context.Background(), ""); err != nil {
		t.Errorf("empty input must mean no arguments, got %v", err)
	}

	if _, err := tool.Call(context.Background(), `["USD"]`); !errors.Is(err, toolkit.ErrInvalidArguments) {
		t.Errorf("expected ErrInvalidArguments for non-object input, got %v", err)
	}
}

func TestTool_InvokePropagatesErrors(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, config.AllowAll(config.Context{}))
	tool, _ := tk.Lookup("create_quote")

	_, err := tool.Invoke(context.Background(), map[string]any{
		"source_currency": "EUR",
		"target_currency": "USD",
		"source_amount":   10,
	})
	if !errors.Is(err, tools.ErrProfileIDRequired) {
		t.Errorf("expected ErrProfileIDRequired, got %v", err)
	}
}

func TestAnthropicTools(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, &config.Configuration{
		Actions: config.Actions{config.ResourceQuotes: {config.PermissionCreate: true}},
	})

	params := tk.AnthropicTools()
	if len(params) != 1 || params[0].OfTool == nil {
		t.Fatalf("expected one tool param, got %+v", params)
	}

	tool := params[0].OfTool
	if tool.Name != "create_quote" {
		t.Errorf("unexpected name %q", tool.Name)
	}
	if !slices.Equal(tool.InputSchema.Required, []string{"source_currency", "target_currency"}) {
		t.Errorf("unexpected required %v", tool.InputSchema.Required)
	}
	if _, ok := tool.InputSchema.Properties.(map[string]any)["source_amount"]; !ok {
		t.Errorf("expected source_amount property, got %v", tool.InputSchema.Properties)
	}
}

func TestOpenAITools(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, &config.Configuration{
		Actions: config.Actions{config.ResourceBalances: {config.PermissionRead: true}},
	})

	params := tk.OpenAITools()
	if len(params) != 1 {
		t.Fatalf("expected one tool param, got %d", len(params))
	}

	fn := params[0].Function
	if fn.Name != "list_balances" {
		t.Errorf("unexpected name %q", fn.Name)
	}
	if fn.Parameters["type"] != "object" {
		t.Errorf("unexpected parameters %v", fn.Parameters)
	}

	raw, err := json.Marshal(params[0])
	if err != nil {
		t.Fatalf("failed to marshal tool param: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["type"] != "function" {
		t.Errorf("expected function tool, got %v", decoded["type"])
	}
}

func TestTool_CallKeepsLargeIdentifiers(t *testing.T) {
	var got int64
	mock := &wisetest.MockedAPI{
		GetTransferFunc: func(_ context.Context, transferID int64) (*wise.Transfer, error) {
			got = transferID
			return &wise.Transfer{ID: transferID}, nil
		},
	}
	tk := newTestToolkit(t, mock, config.AllowAll(config.Context{}))
	tool, _ := tk.Lookup("get_transfer")

	if _, err := tool.Call(context.Background(), `{"transfer_id": 9007199254740993}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9007199254740993 {
		t.Errorf("expected transfer 9007199254740993, got %d", got)
	}

	if _, err := tool.Call(context.Background(), `{"transfer_id": 1} {"transfer_id": 2}`); !errors.Is(err, toolkit.ErrInvalidArguments) {
		t.Errorf("expected ErrInvalidArguments for trailing input, got %v", err)
	}
}

func TestTool_InputSchemaIsACopy(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, config.AllowAll(config.Context{}))
	tool, _ := tk.Lookup("create_quote")

	schema := tool.InputSchema()
	schema["type"] = "array"
	props, _ := schema["properties"].(map[string]any)
	delete(props, "source_currency")
	schema["required"] = []any{}

	fresh := tool.InputSchema()
	if fresh["type"] != "object" {
		t.Errorf("schema type was mutated through a returned copy: %v", fresh["type"])
	}
	if _, ok := fresh["properties"].(map[string]any)["source_currency"]; !ok {
		t.Error("schema properties were mutated through a returned copy")
	}

	params := tool.OpenAITool().Function.Parameters
	if params["type"] != "object" {
		t.Errorf("OpenAI parameters share the mutated schema: %v", params["type"])
	}
	anthropicTool := tool.AnthropicTool().OfTool
	if !slices.Contains(anthropicTool.InputSchema.Required, "source_currency") {
		t.Errorf("Anthropic required list lost source_currency: %v", anthropicTool.InputSchema.Required)
	}
}
