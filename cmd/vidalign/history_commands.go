package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vidalign/internal/alignstore"
	"vidalign/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded alignment runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := alignstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID.String(),
					run.CreatedAt.Local().Format(time.DateTime),
					filepath.Base(run.VideoPath),
					strconv.Itoa(run.Report.Total),
					fmt.Sprintf("%.2f", run.Report.AverageConfidence),
					strconv.Itoa(run.Report.WarningCount),
					formatPercent(run.Report.SceneCoverage),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Created", "Video", "Segments", "Avg confidence", "Warnings", "Scene coverage"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", alignstore.DefaultListLimit, "Maximum runs to list")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the alignments of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(strings.TrimSpace(args[0]))
			if err != nil {
				return services.Wrap(services.ErrValidation, "history", "parse id", fmt.Sprintf("invalid run id %q", args[0]), err)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := alignstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			if run == nil {
				return services.Wrap(services.ErrNotFound, "history", "get run", fmt.Sprintf("run %s not found", id), nil)
			}
			if jsonOut {
				return writeJSON(cmd, run)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Run", statusInfo, run.ID.String(), colorize))
			fmt.Fprintln(out, renderStatusLine("Video", statusInfo, run.VideoPath, colorize))
			if run.SubtitlePath != "" {
				fmt.Fprintln(out, renderStatusLine("Subtitles", statusInfo, run.SubtitlePath, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Created", statusInfo, run.CreatedAt.Local().Format(time.DateTime), colorize))
			if len(run.Alignments) > 0 {
				fmt.Fprintln(out, renderAlignmentTable(run.Alignments))
			}
			for _, line := range renderReport(run.Report, colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run as JSON")
	return cmd
}
