package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"vidalign/internal/alignment"
	"vidalign/internal/alignstore"
	"vidalign/internal/logging"
	"vidalign/internal/services"
	"vidalign/internal/textutil"
)

const batchLockName = "vidalign-batch.lock"

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "batch <video=subtitles.srt>...",
		Short: "Align several video/subtitle pairs in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, opener, err := ctx.runtime()
			if err != nil {
				return err
			}
			jobs := make([]alignJob, 0, len(args))
			for _, arg := range args {
				job, err := parseJob(arg)
				if err != nil {
					return err
				}
				jobs = append(jobs, job)
			}
			if err := checkPaths(cfg); err != nil {
				return err
			}

			lockPath := filepath.Join(cfg.Paths.LogDir, batchLockName)
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire batch lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another vidalign batch is already running (lock %s)", lockPath)
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release batch lock", logging.Error(err))
				}
			}()

			var store *alignstore.Store
			if record {
				store, err = alignstore.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			baseCtx := requestContext(cmd)
			results := make([]alignResult, len(jobs))
			errs := make([]error, len(jobs))
			group, groupCtx := errgroup.WithContext(baseCtx)
			group.SetLimit(max(1, cfg.Alignment.Workers))
			for i, job := range jobs {
				group.Go(func() error {
					jobCtx := services.WithVideo(groupCtx, job.Video)
					result, err := runAlignment(jobCtx, cfg, logger, opener, job)
					if err == nil && store != nil {
						err = recordRun(jobCtx, store, &result)
					}
					results[i] = result
					errs[i] = err
					// Only cancellation stops the other workers.
					if err != nil && alignment.IsCancellation(err) {
						return err
					}
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(jobs))
			failures := 0
			for i, job := range jobs {
				r := results[i]
				status := "ok"
				if errs[i] != nil {
					failures++
					status = services.ErrorKind(errs[i]) + ": " + errs[i].Error()
				} else if len(r.Alignments) == 0 {
					status = "no alignments"
				}
				runID := textutil.Ternary(r.RunID == "", "-", r.RunID)
				rows = append(rows, []string{
					filepath.Base(job.Video),
					filepath.Base(job.Subtitles),
					strconv.Itoa(r.Report.Total),
					fmt.Sprintf("%.2f", r.Report.AverageConfidence),
					strconv.Itoa(r.Report.WarningCount),
					runID,
					cellText(status),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Video", "Subtitles", "Segments", "Avg confidence", "Warnings", "Run", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			if failures > 0 {
				fmt.Fprintln(out, renderStatusLine("Batch", statusError, fmt.Sprintf("%d of %d pairs failed", failures, len(jobs)), colorize))
				return fmt.Errorf("%d of %d pairs failed", failures, len(jobs))
			}
			fmt.Fprintln(out, renderStatusLine("Batch", statusOK, fmt.Sprintf("%d pairs aligned", len(jobs)), colorize))
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Save every run to the history database")
	return cmd
}
