package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mholzen/threadtree/pkg/binarytree"
	"github.com/mholzen/threadtree/pkg/markdown"
	"github.com/mholzen/threadtree/pkg/session"
)

const (
	ToolTraverse = "threadtree_traverse"
	ToolLeaves   = "threadtree_leaves"
	ToolShow     = "threadtree_show"
)

const attachDescription = "Comma separated <parent>:<left|right> steps applied in order to a root V0, " +
	"each creating the next vertex (V1, V2, ...). Empty for a single-vertex tree."

// ToolBuilder wires tree sessions into MCP tool handlers.
type ToolBuilder struct {
	delay time.Duration
}

// NewToolBuilder creates a builder. A positive delay pauses after each visit,
// which only makes sense for clients watching progress.
func NewToolBuilder(delay time.Duration) ToolBuilder {
	return ToolBuilder{delay: delay}
}

// BuildTools constructs the requested tools in the order provided.
func (b ToolBuilder) BuildTools(toolNames []string) ([]mcpserver.ServerTool, error) {
	factories := map[string]func() mcpserver.ServerTool{
		ToolTraverse: b.buildTraverseTool,
		ToolLeaves:   b.buildLeavesTool,
		ToolShow:     b.buildShowTool,
	}

	var tools []mcpserver.ServerTool
	for _, name := range toolNames {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool: %s", name)
		}
		tools = append(tools, factory())
	}
	return tools, nil
}

func (b ToolBuilder) build(rawAttachments string) (*session.Session, error) {
	attachments, err := session.ParseAttachments([]string{rawAttachments})
	if err != nil {
		return nil, err
	}
	treeOptions := []binarytree.Option{binarytree.WithPause(binarytree.NoPause)}
	if b.delay > 0 {
		treeOptions = []binarytree.Option{binarytree.WithDelay(b.delay)}
	}
	return session.Build(attachments, session.WithTreeOptions(treeOptions...))
}

// Traverse builds the tree from attachments and runs one traversal.
func (b ToolBuilder) Traverse(rawAttachments, rawMode string, threaded bool) (session.Run, error) {
	mode, err := binarytree.ParseMode(rawMode)
	if err != nil {
		return session.Run{}, err
	}
	s, err := b.build(rawAttachments)
	if err != nil {
		return session.Run{}, err
	}
	s.SetMode(mode)
	s.SetThreaded(threaded)
	return s.Run(b.delay > 0)
}

// Outline builds the tree and renders it, optionally threaded in mode.
func (b ToolBuilder) Outline(rawAttachments, rawMode string) (string, error) {
	s, err := b.build(rawAttachments)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(rawMode) != "" {
		mode, err := binarytree.ParseMode(rawMode)
		if err != nil {
			return "", err
		}
		if err := s.Tree().CreateThreadedTree(mode, false); err != nil {
			return "", err
		}
	}
	return markdown.Outline(s.Root()), nil
}

func (b ToolBuilder) buildTraverseTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolTraverse,
			mcptypes.WithDescription("Traverse a binary tree and return the visit order"),
			mcptypes.WithString("attach",
				mcptypes.Description(attachDescription),
				mcptypes.DefaultString(""),
			),
			mcptypes.WithString("mode",
				mcptypes.Description("Traversal order: pre, in or post"),
				mcptypes.Required(),
			),
			mcptypes.WithBoolean("threaded",
				mcptypes.Description("Thread the tree first and walk the threads (postorder only threads)"),
				mcptypes.DefaultBool(false),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			run, err := b.Traverse(
				req.GetString("attach", ""),
				req.GetString("mode", ""),
				req.GetBool("threaded", false),
			)
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot traverse tree", err), nil
			}
			slog.Debug("traversed tree", "mode", run.Mode, "threaded", run.Threaded, "visited", len(run.Visited))
			return mcptypes.NewToolResultJSON(run)
		},
	}
}

func (b ToolBuilder) buildLeavesTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolLeaves,
			mcptypes.WithDescription("Count the leaves of a binary tree"),
			mcptypes.WithString("attach",
				mcptypes.Description(attachDescription),
				mcptypes.DefaultString(""),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			s, err := b.build(req.GetString("attach", ""))
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot build tree", err), nil
			}
			return mcptypes.NewToolResultJSON(map[string]int{
				"vertices": s.Len(),
				"leaves":   s.LeafCount(),
			})
		},
	}
}

func (b ToolBuilder) buildShowTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolShow,
			mcptypes.WithDescription("Render a binary tree as a markdown outline, optionally threaded"),
			mcptypes.WithString("attach",
				mcptypes.Description(attachDescription),
				mcptypes.DefaultString(""),
			),
			mcptypes.WithString("thread",
				mcptypes.Description("Thread the tree in this order (pre, in or post) before rendering"),
				mcptypes.DefaultString(""),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			outline, err := b.Outline(req.GetString("attach", ""), req.GetString("thread", ""))
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot render tree", err), nil
			}
			return mcptypes.NewToolResultText(outline), nil
		},
	}
}
