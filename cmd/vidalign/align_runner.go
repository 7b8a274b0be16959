package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vidalign/internal/alignment"
	"vidalign/internal/alignstore"
	"vidalign/internal/config"
	"vidalign/internal/logging"
	"vidalign/internal/preflight"
	"vidalign/internal/scene"
	"vidalign/internal/services"
	"vidalign/internal/subtitles"
	"vidalign/internal/video"
)

// alignJob is one video/subtitle pair.
type alignJob struct {
	Video     string
	Subtitles string
}

type alignResult struct {
	Job        alignJob
	Segments   []subtitles.Segment
	Stats      subtitles.ParseStats
	Alignments []alignment.ContentAlignment
	Report     alignment.Report
	RunID      string
}

// parseJob splits a "video=subtitles" batch argument.
func parseJob(arg string) (alignJob, error) {
	videoPath, subtitlePath, ok := strings.Cut(arg, "=")
	videoPath = strings.TrimSpace(videoPath)
	subtitlePath = strings.TrimSpace(subtitlePath)
	if !ok || videoPath == "" || subtitlePath == "" {
		return alignJob{}, services.Wrap(services.ErrValidation, "batch", "parse pair", fmt.Sprintf("expected video=subtitles, got %q", arg), nil)
	}
	return alignJob{Video: videoPath, Subtitles: subtitlePath}, nil
}

// checkPaths fails fast when an output location is unusable.
func checkPaths(cfg *config.Config) error {
	failed := preflight.Failed(preflight.RunAll(cfg))
	if len(failed) == 0 {
		return nil
	}
	details := make([]string, 0, len(failed))
	for _, r := range failed {
		details = append(details, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "check paths", strings.Join(details, "; "), nil)
}

func runAlignment(ctx context.Context, cfg *config.Config, logger *slog.Logger, opener video.Opener, job alignJob) (alignResult, error) {
	result := alignResult{Job: job}
	segments, stats, err := subtitles.ParseSRT(job.Subtitles)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "align", "read subtitles", job.Subtitles, err)
	}
	result.Segments = segments
	result.Stats = stats
	if stats.Malformed > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, logging.NewComponentLogger(logger, "cli")),
			"skipped malformed subtitle cues", "subtitle_cues_skipped",
			logging.String("subtitles", job.Subtitles),
			logging.Int("malformed", stats.Malformed),
			logging.String(logging.FieldImpact, "those lines are not aligned"),
		)
	}

	analyzer := scene.NewAnalyzer(opener, logger, scene.OptionsFromConfig(cfg))
	aligner := alignment.NewAligner(opener, analyzer, logger, alignment.OptionsFromConfig(cfg))
	alignments, err := aligner.AlignWithVideo(ctx, segments, job.Video)
	if err != nil {
		return result, err
	}
	result.Alignments = alignments
	result.Report = alignment.NewReport(alignments)
	return result, nil
}

// recordRun saves result to the run history and stores the assigned id.
func recordRun(ctx context.Context, store *alignstore.Store, result *alignResult) error {
	run := alignstore.NewRun(result.Job.Video, result.Job.Subtitles, result.Alignments)
	if err := store.SaveRun(ctx, &run); err != nil {
		return err
	}
	result.RunID = run.ID.String()
	return nil
}
