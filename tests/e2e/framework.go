//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultMCPURL  = "http://localhost:9100"
	defaultTimeout = 30 * time.Second
)

// TestConfig holds configuration and runtime state for e2e tests
type TestConfig struct {
	Timeout time.Duration
	// ProfileID is a sandbox profile used by tests that hit the Wise API.
	ProfileID string

	MCPURL string
}

// NewTestConfig creates a new TestConfig with defaults or env overrides
func NewTestConfig() *TestConfig {
	mcpURL := os.Getenv("WISE_MCP_URL")
	if mcpURL == "" {
		mcpURL = defaultMCPURL
	}
	config := &TestConfig{
		Timeout:   defaultTimeout,
		ProfileID: os.Getenv("WISE_PROFILE_ID"),
		MCPURL:    mcpURL,
	}
	fmt.Printf("Test config: url=%s, profile=%q, timeout=%v\n", config.MCPURL, config.ProfileID, config.Timeout)
	return config
}

// Setup waits for the wise-mcp instance under test to become healthy
func (c *TestConfig) Setup(ctx context.Context) error {
	if err := c.waitForReady(ctx, c.MCPURL+"/health"); err != nil {
		return fmt.Errorf("failed waiting for wise-mcp: %w", err)
	}

	fmt.Printf("wise-mcp is ready at %s\n", c.MCPURL)
	return nil
}

// waitForReady polls the target URL until it returns HTTP 200, timeout occurs, or context is cancelled
func (c *TestConfig) waitForReady(ctx context.Context, targetURL string) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	fmt.Printf("Waiting for %s to be ready (timeout: %v)\n", targetURL, c.Timeout)
	attempt := 0
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.Canceled {
				return fmt.Errorf("cancelled waiting for %s", targetURL)
			}
			return fmt.Errorf("timeout waiting for %s to be ready (last error: %v)", targetURL, lastErr)
		case <-ticker.C:
			attempt++
			resp, err := http.Get(targetURL)
			if err != nil {
				lastErr = err
				fmt.Printf("Health check attempt %d failed: %v\n", attempt, err)
				continue
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Printf("Health check succeeded after %d attempts\n", attempt)
				return nil
			}
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			fmt.Printf("Health check attempt %d: status=%d\n", attempt, resp.StatusCode)
		}
	}
}
