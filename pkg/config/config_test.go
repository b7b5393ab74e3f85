package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsToolAllowed(t *testing.T) {
	createTransfer := map[Resource][]Permission{ResourceTransfers: {PermissionCreate}}
	createAndReadQuotes := map[Resource][]Permission{ResourceQuotes: {PermissionCreate, PermissionRead}}
	multiResource := map[Resource][]Permission{
		ResourceTransfers:  {PermissionCreate},
		ResourceRecipients: {PermissionRead},
	}

	tests := []struct {
		name     string
		required map[Resource][]Permission
		actions  Actions
		want     bool
	}{
		{
			name:     "granted",
			required: createTransfer,
			actions:  Actions{ResourceTransfers: {PermissionCreate: true}},
			want:     true,
		},
		{
			name:     "resource missing fails closed",
			required: createTransfer,
			actions:  Actions{ResourceRecipients: {PermissionRead: true}},
			want:     false,
		},
		{
			name:     "nil actions",
			required: createTransfer,
			actions:  nil,
			want:     false,
		},
		{
			name:     "permission explicitly false",
			required: createTransfer,
			actions:  Actions{ResourceTransfers: {PermissionCreate: false, PermissionRead: true}},
			want:     false,
		},
		{
			name:     "permission missing under resource",
			required: createTransfer,
			actions:  Actions{ResourceTransfers: {PermissionRead: true}},
			want:     false,
		},
		{
			name:     "all permissions of a resource required",
			required: createAndReadQuotes,
			actions:  Actions{ResourceQuotes: {PermissionCreate: true}},
			want:     false,
		},
		{
			name:     "all resources required",
			required: multiResource,
			actions:  Actions{ResourceTransfers: {PermissionCreate: true}},
			want:     false,
		},
		{
			name:     "multiple resources granted",
			required: multiResource,
			actions: Actions{
				ResourceTransfers:  {PermissionCreate: true},
				ResourceRecipients: {PermissionRead: true},
			},
			want: true,
		},
		{
			name:     "no requirements",
			required: map[Resource][]Permission{},
			actions:  nil,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsToolAllowed(tt.required, Configuration{Actions: tt.actions})
			if got != tt.want {
				t.Errorf("IsToolAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseActions(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		a, err := ParseActions("all")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !a.Allows(ResourceTransfers, PermissionCreate) || !a.Allows(ResourceBalances, PermissionRead) {
			t.Error("expected all actions to be granted")
		}
		if a.Allows(ResourceBalances, PermissionCreate) {
			t.Error("balances must be read-only")
		}
	})

	t.Run("none", func(t *testing.T) {
		for _, v := range []string{"none", "", "  "} {
			a, err := ParseActions(v)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", v, err)
			}
			if len(a) != 0 {
				t.Errorf("expected no grants for %q, got %v", v, a)
			}
		}
	})

	t.Run("list", func(t *testing.T) {
		a, err := ParseActions("transfers.create, Quotes.Read,,recipients.read")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !a.Allows(ResourceTransfers, PermissionCreate) {
			t.Error("expected transfers.create")
		}
		if !a.Allows(ResourceQuotes, PermissionRead) {
			t.Error("expected quotes.read")
		}
		if a.Allows(ResourceQuotes, PermissionCreate) {
			t.Error("quotes.create must not be granted")
		}
	})

	invalid := []string{"transfers", "transfers.", "wallets.read", "balances.create", "transfers.delete"}
	for _, v := range invalid {
		t.Run("invalid "+v, func(t *testing.T) {
			if _, err := ParseActions(v); err == nil {
				t.Errorf("expected error for %q", v)
			}
		})
	}
}

func TestActionsValidate(t *testing.T) {
	valid := Actions{ResourceBalances: {PermissionRead: true}, ResourceProfiles: {PermissionRead: true}}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := Actions{ResourceBalances: {PermissionUpdate: true}}.Validate()
	if err == nil || !strings.Contains(err.Error(), "balances") {
		t.Errorf("expected balances permission error, got %v", err)
	}

	err = Actions{"cards": {PermissionRead: true}}.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown resource") {
		t.Errorf("expected unknown resource error, got %v", err)
	}
}

func TestConfigurationValidate_ProfileID(t *testing.T) {
	tests := []struct {
		profileID string
		wantErr   bool
	}{
		{profileID: ""},
		{profileID: "25"},
		{profileID: "9223372036854775807"},
		{profileID: "abc", wantErr: true},
		{profileID: "0", wantErr: true},
		{profileID: "-4", wantErr: true},
		{profileID: "1.5", wantErr: true},
		{profileID: " 25", wantErr: true},
		{profileID: "9223372036854775808", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.profileID, func(t *testing.T) {
			cfg := &Configuration{Context: Context{ProfileID: tt.profileID}}
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected error for profile_id %q", tt.profileID)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for profile_id %q: %v", tt.profileID, err)
			}
		})
	}
}

func TestConfigurationClone(t *testing.T) {
	orig := &Configuration{
		Context: Context{ProfileID: "25"},
		Actions: Actions{ResourceQuotes: {PermissionCreate: true}},
	}

	clone := orig.Clone()
	orig.Actions[ResourceQuotes][PermissionCreate] = false
	orig.Actions[ResourceTransfers] = Grants{PermissionCreate: true}
	orig.Context.ProfileID = "99"

	if !clone.Actions.Allows(ResourceQuotes, PermissionCreate) {
		t.Error("clone must not observe changes to the original grants")
	}
	if clone.Actions.Allows(ResourceTransfers, PermissionCreate) {
		t.Error("clone must not observe resources added to the original")
	}
	if clone.Context.ProfileID != "25" {
		t.Errorf("expected profile 25, got %q", clone.Context.ProfileID)
	}

	var nilCfg *Configuration
	if got := nilCfg.Clone(); got.Actions != nil {
		t.Errorf("expected empty clone of nil configuration, got %+v", got)
	}
}

func TestLoad(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "wise-mcp.toml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		return path
	}

	t.Run("valid", func(t *testing.T) {
		path := writeConfig(t, `
[context]
profile_id = "25"

[actions.transfers]
create = true
read = true

[actions.balances]
read = true
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Context.ProfileID != "25" {
			t.Errorf("expected profile 25, got %q", cfg.Context.ProfileID)
		}
		if !cfg.Actions.Allows(ResourceTransfers, PermissionCreate) || !cfg.Actions.Allows(ResourceBalances, PermissionRead) {
			t.Errorf("unexpected actions %v", cfg.Actions)
		}
		if cfg.Actions.Allows(ResourceQuotes, PermissionRead) {
			t.Error("quotes.read must not be granted")
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, `
[context]
profile = "25"
`)
		if _, err := Load(path); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("invalid permission", func(t *testing.T) {
		path := writeConfig(t, `
[actions.balances]
update = true
`)
		if _, err := Load(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
