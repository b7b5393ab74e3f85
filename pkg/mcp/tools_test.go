package mcp

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise/wisetest"
)

func TestToolSchemas(t *testing.T) {
	tk := newTestToolkit(t, &wisetest.MockedAPI{}, &config.Configuration{
		Actions: config.Actions{config.ResourceRecipients: {config.PermissionRead: true}},
	})

	schemas, err := ToolSchemas(tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(schemas))
	}

	var schema struct {
		Type       string   `json:"type"`
		Required   []string `json:"required"`
		Properties map[string]struct {
			Type    any    `json:"type"`
			Pattern string `json:"pattern"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(schemas["get_recipient_account"], &schema); err != nil {
		t.Fatalf("invalid schema: %v", err)
	}
	if schema.Type != "object" {
		t.Errorf("expected object schema, got %q", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "account_id" {
		t.Errorf("expected account_id to be required, got %v", schema.Required)
	}

	re, err := regexp.Compile(schema.Properties["account_id"].Pattern)
	if err != nil {
		t.Fatalf("invalid identifier pattern: %v", err)
	}
	for input, want := range map[string]bool{"40000000": true, "abc": false, "-1": false} {
		if got := re.MatchString(input); got != want {
			t.Errorf("pattern match %q = %v, want %v", input, got, want)
		}
	}
}
