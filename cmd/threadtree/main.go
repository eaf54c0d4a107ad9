package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newApp() *cli.Command {
	closeLog := func() error { return nil }
	return &cli.Command{
		Name:     "threadtree",
		Usage:    "Traverse and thread binary trees",
		Version:  version,
		Flags:    getLoggingFlags(),
		Commands: getCommands(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			closer, err := setupLogging(cmd.String("log-level"), cmd.String("log-file"))
			if err != nil {
				return ctx, err
			}
			closeLog = closer
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			return closeLog()
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
