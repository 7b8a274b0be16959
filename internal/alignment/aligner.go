package alignment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vidalign/internal/keyframe"
	"vidalign/internal/logging"
	"vidalign/internal/scene"
	"vidalign/internal/services"
	"vidalign/internal/subtitles"
	"vidalign/internal/video"
)

// Aligner produces content alignments for subtitle segments against a video.
type Aligner struct {
	opener    video.Opener
	extractor *keyframe.Extractor
	analyzer  *scene.Analyzer
	logger    *slog.Logger
	opts      Options
}

// NewAligner builds an Aligner. A nil analyzer gets default scene options.
func NewAligner(opener video.Opener, analyzer *scene.Analyzer, logger *slog.Logger, opts Options) *Aligner {
	if analyzer == nil {
		analyzer = scene.NewAnalyzer(opener, logger, scene.DefaultOptions())
	}
	return &Aligner{
		opener:    opener,
		extractor: keyframe.NewExtractor(opener, logger),
		analyzer:  analyzer,
		logger:    logging.NewComponentLogger(logger, "alignment"),
		opts:      opts.normalized(),
	}
}

// AlignWithVideo returns one alignment per segment, in order. A video that
// cannot be opened is logged and yields an empty result; the only error
// returned is context cancellation.
func (a *Aligner) AlignWithVideo(ctx context.Context, segments []subtitles.Segment, path string) ([]ContentAlignment, error) {
	ctx = services.WithVideo(ctx, path)
	logger := logging.WithContext(ctx, a.logger)
	if len(segments) == 0 {
		return []ContentAlignment{}, nil
	}
	if a.opener == nil {
		logging.ErrorWithContext(logger, "no video opener configured", "alignment_open_failed")
		return []ContentAlignment{}, nil
	}

	start := time.Now()
	src, err := a.opener.Open(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.ErrorWithContext(logger, "cannot open video; no alignments produced", "alignment_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the path and that ffprobe can read the file"),
		)
		return []ContentAlignment{}, nil
	}
	defer src.Close()

	keyframes, err := a.extractor.ExtractFrom(services.WithStage(ctx, "keyframes"), src, keyframe.Options{
		Method:        keyframe.MethodUniform,
		NumFrames:     min(2*len(segments), a.opts.MaxKeyframes),
		AnalysisWidth: a.opts.AnalysisWidth,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.WarnWithContext(logger, "uniform keyframe pass failed", "alignment_keyframes_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "alignments carry no keyframes"),
		)
		keyframes = nil
	}

	scenes, err := a.analyzer.AnalyzeSource(ctx, src, segments)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.WarnWithContext(logger, "scene pass failed", "alignment_scenes_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "alignments carry no scenes"),
		)
		scenes = nil
	}

	alignments := Align(segments, keyframes, scenes, a.opts)
	report := NewReport(alignments)
	logger.Info("alignment complete",
		logging.Int("segments", len(segments)),
		logging.Int("keyframes", len(keyframes)),
		logging.Int("scenes", len(scenes)),
		logging.Float64("average_confidence", report.AverageConfidence),
		logging.Int("warnings", report.WarningCount),
		logging.Duration("elapsed", time.Since(start)),
	)
	return alignments, nil
}

// IsCancellation reports whether err came from the caller's context.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
