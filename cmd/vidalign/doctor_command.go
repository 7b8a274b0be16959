package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidalign/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check decoder binaries and output directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			problems := 0

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				if !status.Available {
					problems++
					fmt.Fprintln(out, renderStatusLine(status.Name, statusError, status.Detail, colorize))
					continue
				}
				version := preflight.ProbeVersion(cmd.Context(), status.Command)
				fmt.Fprintln(out, renderStatusLine(status.Name, statusOK, version.Detail(), colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Auto crop", statusInfo, yesNo(cfg.Decoder.AutoCrop), colorize))

			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					problems++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			return nil
		},
	}
}
