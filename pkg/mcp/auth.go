package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

// AuthMode defines where the Wise API token comes from
type AuthMode string

const (
	// AuthModeEnv uses the server-wide API key for every call.
	AuthModeEnv AuthMode = "env"
	// AuthModeHeader uses the bearer token of each HTTP request.
	AuthModeHeader AuthMode = "header"
)

type ContextKey string

const (
	// AuthHeaderKey is the context key for the Wise bearer token of an HTTP request
	AuthHeaderKey ContextKey = "Authorization"
)

var ErrMissingToken = errors.New("no Wise API token in request")

// ParseAuthMode validates and converts a string to AuthMode
func ParseAuthMode(mode string) (AuthMode, error) {
	switch mode {
	case string(AuthModeEnv), "":
		return AuthModeEnv, nil
	case string(AuthModeHeader):
		return AuthModeHeader, nil
	default:
		return "", fmt.Errorf("invalid auth mode: %s (valid options: env, header)", mode)
	}
}

func authFromRequest(ctx context.Context, r *http.Request) context.Context {
	authHeaderValue := r.Header.Get(string(AuthHeaderKey))
	token, found := strings.CutPrefix(authHeaderValue, "Bearer ")
	if !found {
		return ctx
	}
	return context.WithValue(ctx, AuthHeaderKey, token)
}

func getTokenFromCtx(ctx context.Context) string {
	token := ctx.Value(AuthHeaderKey)
	if token == nil {
		slog.Warn("No token provided in context.")
		return ""
	}
	tokenStr, ok := token.(string)
	if !ok {
		slog.Warn("Couldn't parse token... ignoring.")
		return ""
	}
	return tokenStr
}

// headerClient builds a Wise client from the bearer token carried by ctx.
func headerClient(host string) func(ctx context.Context) (wise.API, error) {
	return func(ctx context.Context) (wise.API, error) {
		token := getTokenFromCtx(ctx)
		if token == "" {
			return nil, ErrMissingToken
		}
		return wise.NewClient(wise.Config{APIKey: token, Host: host})
	}
}
