package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rtvk/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "queue path:      %s\n", cfg.Paths.QueuePath)
			fmt.Fprintf(out, "history path:    %s\n", cfg.Paths.HistoryPath)
			fmt.Fprintf(out, "temp dir:        %s\n", cfg.Paths.TempDir)
			fmt.Fprintf(out, "ffmpeg binary:   %s\n", cfg.External.FFmpegBinary)
			fmt.Fprintf(out, "group id:        %d\n", cfg.Credentials.VKGroupID)
			fmt.Fprintf(out, "group handle:    %s\n", cfg.Posting.GroupHandle)
			fmt.Fprintf(out, "log format:      %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "log level:       %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "request timeout: %ds\n", cfg.HTTP.RequestTimeout)
			fmt.Fprintf(out, "reddit app:      %s\n", redactPresence(cfg.Credentials.RedditClientID))
			fmt.Fprintf(out, "vk token:        %s\n", redactPresence(cfg.Credentials.VKToken))
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented sample rtvk.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "rtvk.toml"
			if len(args) == 1 {
				path = args[0]
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if _, err := os.Stat(abs); err == nil {
				return fmt.Errorf("%s already exists", abs)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := os.WriteFile(abs, []byte(config.Sample()), 0o644); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", abs)
			return nil
		},
	}
}

// redactPresence reports whether a secret is set without printing it.
func redactPresence(value string) string {
	if value == "" {
		return "(not set)"
	}
	return "(set)"
}
