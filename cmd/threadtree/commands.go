package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mholzen/threadtree/pkg/binarytree"
	"github.com/mholzen/threadtree/pkg/markdown"
	"github.com/mholzen/threadtree/pkg/mcp"
	"github.com/urfave/cli/v3"
)

func getCommands() []*cli.Command {
	return []*cli.Command{
		getTraverseCommand(),
		getThreadCommand(),
		getLeavesCommand(),
		getShowCommand(),
		getMcpCommand(),
		getServeCommand(),
		getVersionCommand(),
	}
}

func getTraverseCommand() *cli.Command {
	return &cli.Command{
		Name:      "traverse",
		Usage:     "Print the visit order of a traversal",
		UsageText: "threadtree traverse [--attach V0:left ...] [--mode pre|in|post] [--threaded] [options]",
		Description: `Build a tree one attachment at a time, then walk it.

Examples:
  # V0 with children V1 (left) and V2 (right), inorder
  threadtree traverse -a V0:left -a V0:right --mode in

  # thread in preorder and walk the threads, pausing 500ms per visit
  threadtree traverse -a V0:left,V1:right --mode pre --threaded --delay 500ms`,
		Flags: getTreeFlags(
			getModeFlag("Traversal order: pre, in, post"),
			getThreadedFlag(),
			getDelayFlag(),
			getFormatFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params, err := getAndValidateTraverseParams(cmd)
			if err != nil {
				return err
			}

			s, err := buildSession(cmd, params.delay)
			if err != nil {
				return err
			}
			s.SetMode(params.mode)
			s.SetThreaded(params.threaded)
			slog.Debug("running", "action", s.Action(), "mode", params.mode.Title())

			run, err := s.Run(params.delay > 0)
			if err != nil {
				return err
			}
			return printRun(cmd.Root().Writer, run, params.format)
		},
	}
}

func getThreadCommand() *cli.Command {
	return &cli.Command{
		Name:      "thread",
		Usage:     "Thread the tree and print it",
		UsageText: "threadtree thread [--attach V0:left ...] [--mode pre|in|post]",
		Flags:     getTreeFlags(getModeFlag("Threading order: pre, in, post")),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, err := binarytree.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}
			s, err := buildSession(cmd, 0)
			if err != nil {
				return err
			}
			if err := s.Tree().CreateThreadedTree(mode, false); err != nil {
				return fmt.Errorf("cannot thread tree: %w", err)
			}
			fmt.Fprintln(cmd.Root().Writer, markdown.Outline(s.Root()))
			return nil
		},
	}
}

func getLeavesCommand() *cli.Command {
	return &cli.Command{
		Name:      "leaves",
		Usage:     "Count leaf vertices",
		UsageText: "threadtree leaves [--attach V0:left ...]",
		Flags:     getTreeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := buildSession(cmd, 0)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, s.LeafCount())
			return nil
		},
	}
}

func getShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the tree as a markdown outline",
		UsageText: "threadtree show [--attach V0:left ...]",
		Flags:     getTreeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := buildSession(cmd, 0)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, markdown.Outline(s.Root()))
			return nil
		},
	}
}

func getMcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "Run as an MCP server over stdio",
		UsageText: "threadtree mcp [--expose all]",
		Flags: []cli.Flag{
			getExposeFlag(),
			getDelayFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return mcp.RunServer(ctx, mcp.Config{
				Expose:  cmd.String("expose"),
				Version: version,
				Delay:   cmd.Duration("delay"),
			})
		},
	}
}

func getServeCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Run as an MCP server over streamable HTTP",
		UsageText: "threadtree serve [--addr :8080] [options]",
		Flags: []cli.Flag{
			getExposeFlag(),
			getDelayFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Value: ":8080",
				Usage: "Address to listen on (e.g., :8080 or localhost:8080)",
			},
			&cli.StringFlag{
				Name:  "endpoint-path",
				Value: "/mcp",
				Usage: "Path for the MCP endpoint",
			},
			&cli.StringFlag{
				Name:  "tls-cert",
				Usage: "Path to TLS certificate file for HTTPS",
			},
			&cli.StringFlag{
				Name:  "tls-key",
				Usage: "Path to TLS key file for HTTPS",
			},
			&cli.BoolFlag{
				Name:  "cors",
				Usage: "Enable CORS for browser-based clients",
			},
			&cli.StringSliceFlag{
				Name:  "cors-origin",
				Usage: "Allowed CORS origins (if empty, allows all when --cors is enabled)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return mcp.RunHTTPServer(ctx, mcp.HTTPConfig{
				Config: mcp.Config{
					Expose:  cmd.String("expose"),
					Version: version,
					Delay:   cmd.Duration("delay"),
				},
				Addr:           cmd.String("addr"),
				EndpointPath:   cmd.String("endpoint-path"),
				TLSCertFile:    cmd.String("tls-cert"),
				TLSKeyFile:     cmd.String("tls-key"),
				EnableCORS:     cmd.Bool("cors"),
				AllowedOrigins: cmd.StringSlice("cors-origin"),
			})
		},
	}
}

func getVersionCommand() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show version information",
		UsageText: "threadtree version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			fmt.Fprintf(w, "threadtree version %s\n", version)
			fmt.Fprintf(w, "commit: %s\n", commit)
			fmt.Fprintf(w, "built: %s\n", date)
			return nil
		},
	}
}
