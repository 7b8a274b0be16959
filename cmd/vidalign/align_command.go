package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"vidalign/internal/alignment"
	"vidalign/internal/alignstore"
	"vidalign/internal/fileutil"
	"vidalign/internal/services"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut    bool
		record     bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "align <video> <subtitles.srt>",
		Short: "Align subtitle lines with video keyframes and scenes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, opener, err := ctx.runtime()
			if err != nil {
				return err
			}
			if err := checkPaths(cfg); err != nil {
				return err
			}
			job := alignJob{Video: args[0], Subtitles: args[1]}
			runCtx := services.WithVideo(requestContext(cmd), job.Video)

			result, err := runAlignment(runCtx, cfg, logger, opener, job)
			if err != nil {
				return err
			}

			if record {
				store, err := alignstore.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := recordRun(runCtx, store, &result); err != nil {
					return err
				}
			}

			enriched := alignment.EnhanceSubtitleData(runCtx, logger, result.Segments, result.Alignments)
			if outputPath != "" {
				err := fileutil.WriteAtomic(outputPath, 0o644, func(w io.Writer) error {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(enriched)
				})
				if err != nil {
					return fmt.Errorf("write enriched segments: %w", err)
				}
			}
			if jsonOut {
				return writeJSON(cmd, enriched)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if len(result.Alignments) == 0 {
				fmt.Fprintln(out, renderStatusLine("Alignment", statusWarn, "no alignments produced", colorize))
				return nil
			}
			fmt.Fprintln(out, renderAlignmentTable(result.Alignments))
			for _, line := range renderReport(result.Report, colorize) {
				fmt.Fprintln(out, line)
			}
			if result.RunID != "" {
				fmt.Fprintln(out, renderStatusLine("Recorded run", statusOK, result.RunID, colorize))
			}
			if outputPath != "" {
				fmt.Fprintln(out, renderStatusLine("Enriched segments", statusOK, outputPath, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit enriched subtitle segments as JSON")
	cmd.Flags().BoolVar(&record, "record", false, "Save the run to the history database")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write enriched subtitle segments as JSON to this file")
	return cmd
}

func renderAlignmentTable(alignments []alignment.ContentAlignment) string {
	rows := make([][]string, 0, len(alignments))
	for i, a := range alignments {
		keyframeTime := "-"
		if a.Keyframe != nil {
			keyframeTime = formatSeconds(a.Keyframe.Timestamp)
		}
		sceneType := "-"
		if a.Scene != nil {
			sceneType = displayLabel(a.Scene.SceneType)
		}
		visual := a.VisualContext
		if visual == "" {
			visual = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatSeconds(a.Start),
			formatSeconds(a.End),
			cellText(a.Text),
			keyframeTime,
			sceneType,
			visual,
			fmt.Sprintf("%.1f", a.Confidence),
			strconv.Itoa(len(a.Warnings)),
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Text", "Keyframe", "Scene", "Visual", "Confidence", "Warnings"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignRight},
	)
}

func renderReport(r alignment.Report, colorize bool) []string {
	lines := renderSectionHeader("Alignment report", colorize)
	lines = append(lines,
		renderStatusLine("Segments", statusInfo, strconv.Itoa(r.Total), colorize),
		renderStatusLine("Average confidence", confidenceKind(r.AverageConfidence), fmt.Sprintf("%.2f", r.AverageConfidence), colorize),
		renderStatusLine("Confidence tiers", statusInfo, fmt.Sprintf("high %d, medium %d, low %d", r.High, r.Medium, r.Low), colorize),
		renderStatusLine("Scene coverage", statusInfo, formatPercent(r.SceneCoverage), colorize),
	)
	warnKind := statusOK
	if r.WarningCount > 0 {
		warnKind = statusWarn
	}
	lines = append(lines, renderStatusLine("Warnings", warnKind,
		fmt.Sprintf("%d segments (%s), %d total", r.WarningCount, formatPercent(r.WarningPercentage), r.TotalWarnings), colorize))
	return lines
}
