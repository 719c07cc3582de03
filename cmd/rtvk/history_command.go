package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rtvk/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No published posts recorded")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.PublishedAt.Format("2006-01-02 15:04"),
					rec.SourceURL,
					rec.MediaKind,
					rec.Attachments,
					strconv.FormatInt(rec.WallPostID, 10),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Published", "Source", "Kind", "Attachments", "Post"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 for all)")
	return cmd
}
