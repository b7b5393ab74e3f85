package mcp

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/metrics"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/toolkit"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

// WiseMCPOptions contains configuration options for the MCP server
type WiseMCPOptions struct {
	AuthMode AuthMode
	// APIKey is the Wise API token used in AuthModeEnv.
	APIKey        string
	Host          string
	Configuration *config.Configuration
	// Client replaces the Wise API client, mainly for tests.
	Client  wise.API
	Metrics *metrics.Metrics
}

const (
	mcpEndpoint            = "/mcp"
	healthEndpoint         = "/health"
	metricsEndpoint        = "/metrics"
	serverName             = "wise-mcp"
	serverVersion          = "1.0.0"
	defaultShutdownTimeout = 10 * time.Second
)

func NewMCPServer(opts WiseMCPOptions) (*server.MCPServer, error) {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
		server.WithToolCapabilities(true),
		server.WithInstructions(tools.ServerPrompt),
	)

	tk, err := newToolkit(opts)
	if err != nil {
		return nil, err
	}

	if err := SetupTools(mcpServer, tk); err != nil {
		return nil, err
	}

	return mcpServer, nil
}

func newToolkit(opts WiseMCPOptions) (*toolkit.Toolkit, error) {
	tkOpts := toolkit.Options{
		APIKey:        opts.APIKey,
		Host:          opts.Host,
		Configuration: opts.Configuration,
		Client:        opts.Client,
		Metrics:       opts.Metrics,
	}
	if opts.AuthMode == AuthModeHeader && opts.Client == nil {
		tkOpts.ClientFromContext = headerClient(opts.Host)
	}
	return toolkit.New(tkOpts)
}

// SetupTools registers one MCP tool per tool allowed by the toolkit.
func SetupTools(mcpServer *server.MCPServer, tk *toolkit.Toolkit) error {
	for _, def := range tk.Tools() {
		tool, err := def.ToMCPTool()
		if err != nil {
			return err
		}
		mcpServer.AddTool(tool, ToolHandler(tk, def.Name))
	}

	slog.Info("MCP tools registered", "count", len(tk.Tools()))
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Incoming request", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		if r.ContentLength > 0 {
			slog.Debug("Request content length", "content_length", r.ContentLength)
		}
		next.ServeHTTP(w, r)
	})
}

// ServeStdio serves line-delimited JSON-RPC over in and out until ctx is done or in is closed.
func ServeStdio(ctx context.Context, mcpServer *server.MCPServer, in io.Reader, out io.Writer) error {
	stdioServer := server.NewStdioServer(mcpServer)
	stdioServer.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))

	slog.Info("Stdio server starting")
	err := stdioServer.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Serve serves the MCP server over streamable HTTP on listenAddr.
// metricsHandler is mounted on /metrics when not nil.
func Serve(ctx context.Context, mcpServer *server.MCPServer, listenAddr string, metricsHandler http.Handler) error {
	mux := http.NewServeMux()

	httpServer := &http.Server{
		Addr:     listenAddr,
		Handler:  loggingMiddleware(mux),
		ErrorLog: log.New(os.Stderr, "http: ", log.LstdFlags),
	}

	streamableHTTPServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStreamableHTTPServer(httpServer),
		server.WithStateLess(true),
		server.WithHTTPContextFunc(authFromRequest),
	)
	mux.Handle(mcpEndpoint, streamableHTTPServer)

	mux.HandleFunc(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if metricsHandler != nil {
		mux.Handle(metricsEndpoint, metricsHandler)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "listen_addr", listenAddr, "mcp_endpoint", mcpEndpoint)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		slog.Warn("Received signal, initiating graceful shutdown", "signal", sig)
		cancel()
	case <-ctx.Done():
		slog.Warn("Context cancelled, initiating graceful shutdown")
	case err := <-serverErr:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer shutdownCancel()

	slog.Info("Shutting down HTTP server gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return err
	}

	slog.Info("HTTP server shutdown complete")
	return nil
}
