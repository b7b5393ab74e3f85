package mcp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
)

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		input   string
		want    AuthMode
		wantErr bool
	}{
		{input: "", want: AuthModeEnv},
		{input: "env", want: AuthModeEnv},
		{input: "header", want: AuthModeHeader},
		{input: "kubeconfig", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAuthMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAuthFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "no header", header: "", want: ""},
		{name: "basic auth ignored", header: "Basic dXNlcjpwYXNz", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, mcpEndpoint, http.NoBody)
			if tt.header != "" {
				req.Header.Set(string(AuthHeaderKey), tt.header)
			}
			ctx := authFromRequest(context.Background(), req)
			if got := getTokenFromCtx(ctx); got != tt.want {
				t.Errorf("expected token %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHeaderAuth_ForwardsRequestToken(t *testing.T) {
	token := "wise-token-from-request"

	var gotAuth string
	wiseAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":101,"type":"personal"}]`))
	}))
	defer wiseAPI.Close()

	tk, err := newToolkit(WiseMCPOptions{
		AuthMode: AuthModeHeader,
		Host:     wiseAPI.URL,
		Configuration: &config.Configuration{
			Actions: config.Actions{config.ResourceProfiles: {config.PermissionRead: true}},
		},
	})
	if err != nil {
		t.Fatalf("failed to create toolkit: %v", err)
	}

	t.Run("token in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, mcpEndpoint, http.NoBody)
		req.Header.Set(string(AuthHeaderKey), "Bearer "+token)
		ctx := authFromRequest(context.Background(), req)

		result := tk.Run(ctx, "list_profiles", nil)
		if result.IsError() {
			t.Fatalf("unexpected error: %v", result.Error)
		}
		if gotAuth != "Bearer "+token {
			t.Errorf("expected request token to be forwarded, got %q", gotAuth)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		result := tk.Run(context.Background(), "list_profiles", nil)
		if !errors.Is(result.Error, ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", result.Error)
		}
	})
}
