package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"vidalign/internal/scene"
	"vidalign/internal/services"
	"vidalign/internal/subtitles"
)

type scenesOutput struct {
	Scenes  []scene.Scene           `json:"scenes"`
	Summary scene.TransitionSummary `json:"summary"`
}

func newScenesCommand(ctx *commandContext) *cobra.Command {
	var subtitlePath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scenes <video>",
		Short: "Detect and classify scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, opener, err := ctx.runtime()
			if err != nil {
				return err
			}
			var segments []subtitles.Segment
			if subtitlePath != "" {
				segments, _, err = subtitles.ParseSRT(subtitlePath)
				if err != nil {
					return err
				}
			}

			runCtx := services.WithVideo(requestContext(cmd), args[0])
			analyzer := scene.NewAnalyzer(opener, logger, scene.OptionsFromConfig(cfg))
			scenes, err := analyzer.Analyze(runCtx, args[0], segments)
			if err != nil {
				return err
			}
			summary := scene.AnalyzeTransitions(scenes)
			if jsonOut {
				return writeJSON(cmd, scenesOutput{Scenes: scenes, Summary: summary})
			}

			out := cmd.OutOrStdout()
			if len(scenes) == 0 {
				fmt.Fprintln(out, "No scenes detected")
				return nil
			}
			rows := make([][]string, 0, len(scenes))
			for i, s := range scenes {
				rows = append(rows, []string{
					strconv.Itoa(i),
					formatSeconds(s.Start),
					formatSeconds(s.End),
					displayLabel(s.SceneType),
					displayLabel(s.Location),
					strconv.Itoa(len(s.Keyframes)),
					cellText(s.Text),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Type", "Location", "Keyframes", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))

			types := make([]string, 0, len(summary.TypeCounts))
			for t := range summary.TypeCounts {
				types = append(types, t)
			}
			sort.Strings(types)
			countRows := make([][]string, 0, len(types))
			for _, t := range types {
				countRows = append(countRows, []string{displayLabel(t), strconv.Itoa(summary.TypeCounts[t])})
			}
			fmt.Fprintln(out, renderTable([]string{"Scene type", "Count"}, countRows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "Scenes: %d  Transitions: %d  Average duration: %s\n",
				summary.SceneCount, len(summary.Transitions), formatSeconds(summary.AverageDuration))
			return nil
		},
	}

	cmd.Flags().StringVarP(&subtitlePath, "subtitles", "s", "", "SRT file whose text is attached to scenes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit scenes and the transition summary as JSON")
	return cmd
}
