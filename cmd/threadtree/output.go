package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mholzen/threadtree/pkg/markdown"
	"github.com/mholzen/threadtree/pkg/session"
)

func printJSONToWriter(w io.Writer, response interface{}) error {
	prettyJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot format JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", prettyJSON)
	return nil
}

func printRun(w io.Writer, run session.Run, format string) error {
	switch format {
	case "json":
		return printJSONToWriter(w, run)
	case "markdown":
		if len(run.Visited) > 0 {
			fmt.Fprintln(w, markdown.GenerateOL(run.Visited))
		}
		if len(run.Threads) > 0 {
			threads := make([]string, 0, len(run.Threads))
			for _, edge := range run.Threads {
				threads = append(threads, edge.String())
			}
			fmt.Fprintln(w, markdown.GenerateUL(threads))
		}
	default:
		fmt.Fprintln(w, markdown.Sequence(run.Visited))
		for _, edge := range run.Threads {
			fmt.Fprintln(w, edge.String())
		}
	}
	return nil
}
