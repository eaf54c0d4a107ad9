package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPConfig extends Config with HTTP-specific settings.
type HTTPConfig struct {
	Config

	// Addr is the address to listen on (e.g., ":8080" or "localhost:8080").
	Addr string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// EndpointPath is the path for the MCP endpoint (default: "/mcp").
	EndpointPath string

	// EnableCORS enables CORS headers for browser-based clients.
	EnableCORS bool

	// AllowedOrigins is a list of allowed CORS origins (if EnableCORS is true).
	// If empty, allows all origins.
	AllowedOrigins []string
}

// NewHTTPHandler returns the mux serving the MCP endpoint.
func NewHTTPHandler(cfg HTTPConfig) (http.Handler, error) {
	mcpServer, err := NewServer(cfg.Config)
	if err != nil {
		return nil, err
	}

	endpointPath := cfg.EndpointPath
	if endpointPath == "" {
		endpointPath = "/mcp"
	}

	var handler http.Handler = mcpserver.NewStreamableHTTPServer(
		mcpServer,
		mcpserver.WithEndpointPath(endpointPath),
	)
	if cfg.EnableCORS {
		handler = corsMiddleware(cfg.AllowedOrigins)(handler)
	}

	mux := http.NewServeMux()
	mux.Handle(endpointPath, handler)
	return mux, nil
}

// RunHTTPServer starts the MCP server over streamable HTTP transport.
func RunHTTPServer(ctx context.Context, cfg HTTPConfig) error {
	handler, err := NewHTTPHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No timeout for SSE streaming
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("starting MCP HTTP server",
		"addr", cfg.Addr,
		"endpoint", cfg.EndpointPath,
		"tls", cfg.TLSCertFile != "",
	)

	// also stops the shutdown goroutine when the listener fails on its own
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	}()

	var serverErr error
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		serverErr = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		serverErr = server.ListenAndServe()
	}

	if serverErr != nil && serverErr != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", serverErr)
	}

	return nil
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := len(allowedOrigins) == 0
			for _, o := range allowedOrigins {
				if o == origin || o == "*" {
					allowed = true
					break
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Mcp-Session-Id")
				w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
