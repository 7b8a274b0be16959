package main

import (
	"io"

	"github.com/spf13/cobra"

	"vidalign/internal/video"
)

// rootOptions replaces collaborators in tests.
type rootOptions struct {
	opener    video.Opener
	logWriter io.Writer
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(rootOptions{})
}

func newRootCommandWith(opts rootOptions) *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag, opts)

	rootCmd := &cobra.Command{
		Use:           "vidalign",
		Short:         "Align subtitles with video keyframes and scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newKeyframesCommand(ctx))
	rootCmd.AddCommand(newScenesCommand(ctx))
	rootCmd.AddCommand(newAlignCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
