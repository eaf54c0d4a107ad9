package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config controls MCP server startup.
type Config struct {
	Expose  string
	Version string
	// Delay pauses after each visit; zero runs traversals without pausing.
	Delay time.Duration
}

// NewServer builds an MCP server exposing the requested tools.
func NewServer(cfg Config) (*mcpserver.MCPServer, error) {
	expose := strings.TrimSpace(cfg.Expose)
	if expose == "" {
		expose = "all"
	}

	toolsToEnable, err := ParseExposeList(expose)
	if err != nil {
		return nil, err
	}

	builder := NewToolBuilder(cfg.Delay)
	serverTools, err := builder.BuildTools(toolsToEnable)
	if err != nil {
		return nil, err
	}

	hooks := &mcpserver.Hooks{}
	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcptypes.MCPMethod, message any) {
		msgJSON, _ := json.Marshal(message)
		slog.Debug("mcp request", "id", id, "method", method, "message", string(msgJSON))
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcptypes.MCPMethod, message any, err error) {
		slog.Debug("mcp error", "id", id, "method", method, "error", err)
	})

	server := mcpserver.NewMCPServer(
		"threadtree",
		cfg.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
		mcpserver.WithHooks(hooks),
	)

	for _, tool := range serverTools {
		server.AddTool(tool.Tool, tool.Handler)
	}
	return server, nil
}

// RunServer starts the MCP stdio server with the requested tool set.
func RunServer(ctx context.Context, cfg Config) error {
	server, err := NewServer(cfg)
	if err != nil {
		return err
	}

	return mcpserver.ServeStdio(server, mcpserver.WithStdioContextFunc(func(_ context.Context) context.Context {
		return ctx
	}))
}

// ParseExposeList converts the --expose flag into a deduplicated, ordered tool list.
// Tools can be referenced by short name (e.g., "traverse") or full MCP name
// (e.g., "threadtree_traverse"); "all" selects every tool.
func ParseExposeList(raw string) ([]string, error) {
	tokenList := strings.Split(raw, ",")

	var tokens []string
	for _, t := range tokenList {
		token := strings.TrimSpace(strings.ToLower(t))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		tokens = []string{"all"}
	}

	result := make([]string, 0, len(allTools))
	seen := make(map[string]struct{})

	addSet := func(names []string) {
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			result = append(result, name)
		}
	}

	for _, token := range tokens {
		if group, ok := groupMap[token]; ok {
			addSet(group)
			continue
		}

		if alias, ok := aliasMap[token]; ok {
			addSet([]string{alias})
			continue
		}

		if _, ok := fullNames[token]; ok {
			addSet([]string{token})
			continue
		}

		return nil, fmt.Errorf("unknown tool or group in --expose: %s", token)
	}

	return result, nil
}

var (
	allTools = []string{
		ToolTraverse,
		ToolLeaves,
		ToolShow,
	}

	groupMap = map[string][]string{
		"all": allTools,
	}

	aliasMap = map[string]string{
		"traverse": ToolTraverse,
		"leaves":   ToolLeaves,
		"show":     ToolShow,
	}

	fullNames = func() map[string]struct{} {
		out := make(map[string]struct{}, len(allTools))
		for _, name := range allTools {
			out[name] = struct{}{}
		}
		return out
	}()
)
