package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
)

func TestLoadConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wise-mcp.toml")
	if err := os.WriteFile(path, []byte("[context]\nprofile_id = \"25\"\n\n[actions.balances]\nread = true\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		actions     string
		profileID   string
		wantTools   []string
		wantProfile string
		wantErr     bool
	}{
		{
			name:    "default grants nothing",
			actions: defaultActions,
		},
		{
			name:      "explicit actions",
			actions:   "transfers.read",
			wantTools: []string{"list_transfers", "get_transfer"},
		},
		{
			name:        "file ignores actions flag",
			path:        path,
			actions:     "all",
			wantTools:   []string{"list_balances"},
			wantProfile: "25",
		},
		{
			name:        "profile flag overrides file",
			path:        path,
			actions:     defaultActions,
			profileID:   "77",
			wantTools:   []string{"list_balances"},
			wantProfile: "77",
		},
		{
			name:      "non numeric profile",
			actions:   defaultActions,
			profileID: "abc",
			wantErr:   true,
		},
		{
			name:    "unknown permission",
			actions: "balances.create",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfiguration(tt.path, tt.actions, tt.profileID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var names []string
			for _, def := range tools.Filter(*cfg) {
				names = append(names, def.Name)
			}
			if len(names) != len(tt.wantTools) {
				t.Fatalf("expected tools %v, got %v", tt.wantTools, names)
			}
			for i := range names {
				if names[i] != tt.wantTools[i] {
					t.Errorf("expected tools %v, got %v", tt.wantTools, names)
					break
				}
			}
			if cfg.Context.ProfileID != tt.wantProfile {
				t.Errorf("expected profile %q, got %q", tt.wantProfile, cfg.Context.ProfileID)
			}
		})
	}
}

func TestDefaultActionsGrantNothing(t *testing.T) {
	actions, err := config.ParseActions(defaultActions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, resource := range config.Resources() {
		if len(actions[resource]) != 0 {
			t.Errorf("default actions grant %s: %v", resource, actions[resource])
		}
	}
}
