package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rtvk/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url> <tags> <title>",
		Short: "Append an item to the work queue",
		Long: `Append one item to the tail of the queue. Tags are comma-separated.
Pipe and comma characters inside the title or tags corrupt the queue format,
so avoid them.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimSpace(args[0])
			if url == "" {
				return fmt.Errorf("url must not be empty")
			}

			store, err := ctx.openQueue()
			if err != nil {
				return err
			}
			entry := queue.Entry{URL: url, Tags: queue.ParseTags(args[1]), Title: args[2]}
			if err := store.Add(entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Queued %s (%d tags)\n", entry.URL, len(entry.Tags))
			return nil
		},
	}
}
