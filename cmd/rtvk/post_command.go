package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rtvk/internal/fetch"
	"rtvk/internal/history"
	"rtvk/internal/media"
	"rtvk/internal/pipeline"
	"rtvk/internal/queue"
	"rtvk/internal/reddit"
	"rtvk/internal/vk"
)

func newPostCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "post [<url> <tags> <title>]",
		Short: "Publish one item, given directly or popped from the queue head",
		Long: `Publish one post. With three arguments the item is published directly;
with none, the oldest queued entry is removed and published. Tags are
comma-separated.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected no arguments or exactly <url> <tags> <title>, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return pipeline.Wrap(pipeline.ErrConfig, "config", "validate", "", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var entry queue.Entry
			if len(args) == 3 {
				entry = queue.Entry{URL: args[0], Tags: queue.ParseTags(args[1]), Title: args[2]}
			} else {
				store, err := ctx.openQueue()
				if err != nil {
					return err
				}
				entry, err = store.Pop()
				if err != nil {
					switch {
					case errors.Is(err, queue.ErrEmpty):
						return pipeline.Wrap(pipeline.ErrNotFound, "queue", "pop", "no pending entries", err)
					case errors.Is(err, queue.ErrFormat):
						return pipeline.Wrap(pipeline.ErrFormat, "queue", "pop", "", err)
					default:
						return err
					}
				}
			}

			timeout := time.Duration(cfg.HTTP.RequestTimeout) * time.Second
			fetcher := fetch.New(nil, timeout, cfg.Credentials.RedditUserAgent)
			resolver := reddit.New(
				cfg.Credentials.RedditUserAgent,
				cfg.Credentials.RedditClientID,
				cfg.Credentials.RedditClientSecret,
				timeout,
			)
			assembler, err := media.NewAssembler(fetcher, cfg.External.FFmpegBinary, cfg.Paths.TempDir)
			if err != nil {
				return err
			}
			uploader := vk.New(cfg.Credentials.VKToken, cfg.Credentials.VKGroupID, fetcher, timeout)

			var historian pipeline.Historian
			if store, histErr := history.Open(cfg.Paths.HistoryPath); histErr != nil {
				logger.Warn("history store unavailable", "error", histErr)
			} else {
				defer store.Close()
				historian = store
			}

			p := pipeline.New(resolver, assembler, uploader, historian, cfg.Posting.GroupHandle, logger)
			result, err := p.Run(cmd.Context(), entry)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Published %s as wall post %d (%s, attachments %s)\n",
				entry.URL, result.WallPostID, result.Kind, result.Attachments)
			return nil
		},
	}
}
