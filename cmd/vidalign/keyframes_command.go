package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vidalign/internal/keyframe"
	"vidalign/internal/services"
)

func newKeyframesCommand(ctx *commandContext) *cobra.Command {
	var (
		method    string
		numFrames int
		threshold float64
		maxFrames int
		save      bool
		outputDir string
		format    string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "keyframes <video>",
		Short: "Extract keyframes from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, opener, err := ctx.runtime()
			if err != nil {
				return err
			}
			opts := keyframe.OptionsFromConfig(cfg)
			flags := cmd.Flags()
			if flags.Changed("method") {
				opts.Method = keyframe.Method(method)
			}
			if flags.Changed("num") {
				opts.NumFrames = numFrames
			}
			if flags.Changed("threshold") {
				opts.Threshold = threshold
			}
			if flags.Changed("max") {
				opts.MaxFrames = maxFrames
			}
			if flags.Changed("save") {
				opts.SaveFrames = save
			}
			if flags.Changed("output-dir") {
				opts.OutputDir = outputDir
			}
			if flags.Changed("format") {
				opts.ImageFormat = format
			}

			runCtx := services.WithVideo(requestContext(cmd), args[0])
			frames, err := keyframe.NewExtractor(opener, logger).Extract(runCtx, args[0], opts)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, frames)
			}

			out := cmd.OutOrStdout()
			if len(frames) == 0 {
				fmt.Fprintln(out, "No keyframes extracted")
				return nil
			}
			rows := make([][]string, 0, len(frames))
			for i, k := range frames {
				path := k.Path
				if path == "" {
					path = "-"
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					strconv.Itoa(k.FrameIndex),
					formatSeconds(k.Timestamp),
					string(k.Method),
					fmt.Sprintf("%.3f", k.Score),
					path,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Frame", "Time", "Method", "Score", "Saved"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "Extraction method: uniform, difference, scene")
	cmd.Flags().IntVarP(&numFrames, "num", "n", 0, "Number of uniform samples")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Difference or scene threshold")
	cmd.Flags().IntVar(&maxFrames, "max", 0, "Maximum keyframes for difference and scene methods")
	cmd.Flags().BoolVar(&save, "save", false, "Write keyframe images to disk")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for saved keyframes")
	cmd.Flags().StringVar(&format, "format", "", "Image format for saved keyframes: jpg, png, bmp")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit keyframes as JSON")
	return cmd
}
