package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/common/promslog"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/mcp"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/metrics"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
)

// defaultActions grants nothing, so money-moving tools are only exposed on request.
const defaultActions = "none"

func main() {
	// Parse command line flags
	var listen = flag.String("listen", "", "Listen address for HTTP mode (e.g., :9100, 127.0.0.1:8080)")
	var authMode = flag.String("auth-mode", "", "Authentication mode: env (default) or header")
	var host = flag.String("host", "", "Wise API base URL (defaults to WISE_API_HOST, then the sandbox API)")
	var profileID = flag.String("profile-id", "", "Default Wise profile ID used when a tool call omits profile_id")
	var configFile = flag.String("config", "", "Path to a TOML permission file")
	var actions = flag.String("actions", defaultActions, "Allowed actions when no config file is given: 'none' (default), 'all', or comma-separated resource.permission pairs (e.g. transfers.read,quotes.create)")
	var envFile = flag.String("env-file", ".env", "Optional dotenv file with WISE_API_KEY and WISE_API_HOST")
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	// Configure slog with specified log level
	configureLogging(*logLevel)

	loadEnvFile(*envFile)

	// Parse and validate auth mode
	parsedAuthMode, err := mcp.ParseAuthMode(*authMode)
	if err != nil {
		log.Fatalf("Invalid auth mode: %v", err)
	}

	apiKey := os.Getenv("WISE_API_KEY")
	if parsedAuthMode == mcp.AuthModeEnv && apiKey == "" {
		log.Fatal("WISE_API_KEY must be set in the environment or in the env file")
	}

	apiHost := *host
	if apiHost == "" {
		apiHost = os.Getenv("WISE_API_HOST")
	}

	cfg, err := loadConfiguration(*configFile, *actions, *profileID)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	m := metrics.NewMetrics()

	// Create MCP options
	opts := mcp.WiseMCPOptions{
		AuthMode:      parsedAuthMode,
		APIKey:        apiKey,
		Host:          apiHost,
		Configuration: cfg,
		Metrics:       m,
	}

	// Create MCP server
	mcpServer, err := mcp.NewMCPServer(opts)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	slog.Info("Starting server", "Host", opts.Host, "AuthMode", opts.AuthMode, "ProfileID", cfg.Context.ProfileID)

	// Choose server mode based on flags
	if *listen != "" {
		// HTTP mode
		if err := mcp.Serve(context.Background(), mcpServer, *listen, m.Handler()); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
		return
	}

	// Start server on stdio (default mode)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := mcp.ServeStdio(ctx, mcpServer, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadConfiguration reads the permission file when given, otherwise builds one from the actions flag.
// A non-empty profileID overrides the context of the file.
func loadConfiguration(path, actions, profileID string) (*config.Configuration, error) {
	var cfg *config.Configuration
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		parsed, err := config.ParseActions(actions)
		if err != nil {
			return nil, err
		}
		cfg = &config.Configuration{Actions: parsed}
		if strings.EqualFold(strings.TrimSpace(actions), "all") {
			slog.Warn("All actions are granted, including transfers and recipient changes", "actions", actions)
		}
	}

	if profileID != "" {
		cfg.Context.ProfileID = profileID
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(tools.Filter(*cfg)) == 0 {
		slog.Warn("No tools are granted; pass --actions or --config to expose Wise operations")
	}
	return cfg, nil
}

// loadEnvFile loads credentials from a dotenv file. A missing file is not an error.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return
		}
		slog.Warn("Could not load env file", "path", path, "err", err)
		return
	}
	slog.Debug("Loaded env file", "path", path)
}

// configureLogging sets up the slog logger with the specified log level.
// Logs go to stderr so that stdout stays reserved for JSON-RPC in stdio mode.
func configureLogging(levelStr string) {
	level := promslog.NewLevel()
	err := level.Set(levelStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	format := promslog.NewFormat()
	err = format.Set("logfmt")
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
		Writer: os.Stderr,
	})
	slog.SetDefault(logger)
}
