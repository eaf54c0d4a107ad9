package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mholzen/threadtree/pkg/binarytree"
	"github.com/mholzen/threadtree/pkg/session"
	"github.com/urfave/cli/v3"
)

func getLoggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "warn",
			Usage:   "Log level: debug, info, warn, error",
			Sources: cli.EnvVars("THREADTREE_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Append logs to this file instead of stderr",
		},
	}
}

func getAttachFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "attach",
		Aliases: []string{"a"},
		Usage:   "Attach the next vertex as <parent>:<left|right>, starting from root V0 (repeatable, applied in order)",
	}
}

func getModeFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Value:   "in",
		Usage:   usage,
	}
}

func getThreadedFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "threaded",
		Aliases: []string{"t"},
		Usage:   "Thread the tree first and walk the threads (postorder only creates the threads)",
	}
}

func getDelayFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "delay",
		Value: 0,
		Usage: fmt.Sprintf("Pause after each visit, e.g. %s (0 disables)", binarytree.DefaultDelay),
	}
}

func getFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "list",
		Usage: "Output format: list, json, or markdown",
	}
}

func getTreeFlags(commandFlags ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{getAttachFlag()}
	flags = append(flags, commandFlags...)
	return flags
}

func getExposeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "expose",
		Value: "all",
		Usage: "Tools to expose: all, or comma-separated tool names (traverse, leaves, show)",
	}
}

type TraverseParameters struct {
	mode     binarytree.Mode
	threaded bool
	delay    time.Duration
	format   string
}

func getAndValidateTraverseParams(cmd *cli.Command) (TraverseParameters, error) {
	format := cmd.String("format")
	if err := validateFormat(format); err != nil {
		return TraverseParameters{}, err
	}

	mode, err := binarytree.ParseMode(cmd.String("mode"))
	if err != nil {
		return TraverseParameters{}, err
	}

	delay := cmd.Duration("delay")
	if delay < 0 {
		return TraverseParameters{}, fmt.Errorf("delay cannot be negative")
	}
	return TraverseParameters{
		mode:     mode,
		threaded: cmd.Bool("threaded"),
		delay:    delay,
		format:   format,
	}, nil
}

func validateFormat(format string) error {
	if format != "list" && format != "json" && format != "markdown" {
		return fmt.Errorf("format must be 'list', 'json', or 'markdown'")
	}
	return nil
}

// buildSession applies the --attach steps to a fresh tree.
func buildSession(cmd *cli.Command, delay time.Duration) (*session.Session, error) {
	attachments, err := session.ParseAttachments(cmd.StringSlice("attach"))
	if err != nil {
		return nil, err
	}

	treeOptions := []binarytree.Option{binarytree.WithPause(binarytree.NoPause)}
	if delay > 0 {
		treeOptions = []binarytree.Option{binarytree.WithDelay(delay)}
	}

	return session.Build(attachments,
		session.WithTreeOptions(treeOptions...),
		session.WithObserver(func(e session.Event) {
			slog.Info(e.Tip, "leaves", e.LeafCount)
		}),
	)
}
