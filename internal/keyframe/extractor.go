package keyframe

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"time"

	"vidalign/internal/bgsub"
	"vidalign/internal/imaging"
	"vidalign/internal/logging"
	"vidalign/internal/services"
	"vidalign/internal/video"
)

// Extractor selects keyframes from videos acquired through an Opener.
type Extractor struct {
	opener video.Opener
	logger *slog.Logger
}

func NewExtractor(opener video.Opener, logger *slog.Logger) *Extractor {
	return &Extractor{
		opener: opener,
		logger: logging.NewComponentLogger(logger, "keyframe"),
	}
}

// Extract opens path, runs the configured strategy, and releases the handle.
// An unopenable video yields a *services.MediaProcessingError.
func (e *Extractor) Extract(ctx context.Context, path string, opts Options) ([]Keyframe, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	src, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return e.extract(ctx, src, opts)
}

// ExtractFrom runs the configured strategy on a caller-owned handle. The
// handle's cursor position is undefined afterwards.
func (e *Extractor) ExtractFrom(ctx context.Context, src video.Source, opts Options) ([]Keyframe, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	return e.extract(ctx, src, opts)
}

func (e *Extractor) open(ctx context.Context, path string) (video.Source, error) {
	if e.opener == nil {
		return nil, services.NewMediaProcessingError(path, "open", errors.New("no video opener configured"))
	}
	src, err := e.opener.Open(ctx, path)
	if err != nil {
		var mpe *services.MediaProcessingError
		if errors.As(err, &mpe) {
			return nil, err
		}
		return nil, services.NewMediaProcessingError(path, "open", err)
	}
	return src, nil
}

func (e *Extractor) extract(ctx context.Context, src video.Source, opts Options) ([]Keyframe, error) {
	logger := logging.WithContext(ctx, e.logger).With(
		logging.String(logging.FieldVideo, src.Path()),
		logging.String("method", string(opts.Method)),
	)
	total := src.FrameCount()
	if total <= 0 {
		logger.Info("video reports no frames; nothing to extract")
		return []Keyframe{}, nil
	}

	start := time.Now()
	var (
		frames []Keyframe
		err    error
	)
	switch opts.Method {
	case MethodUniform:
		frames, err = e.uniform(ctx, src, opts, logger)
	case MethodDifference:
		frames, err = e.sequential(ctx, src, opts, logger, newDifferenceScorer(opts))
	case MethodScene:
		frames, err = e.sequential(ctx, src, opts, logger, newSceneScorer(opts))
	}
	if err != nil {
		return nil, err
	}

	if opts.SaveFrames && len(frames) > 0 {
		e.save(ctx, src.Path(), frames, opts, logger)
	}

	logger.Info("keyframe extraction complete",
		logging.Int("keyframes", len(frames)),
		logging.Int("total_frames", total),
		logging.Duration("elapsed", time.Since(start)),
	)
	return frames, nil
}

func (e *Extractor) uniform(ctx context.Context, src video.Source, opts Options, logger *slog.Logger) ([]Keyframe, error) {
	frames := []Keyframe{}
	if opts.NumFrames <= 0 {
		return frames, nil
	}
	total := src.FrameCount()
	interval := max(1, total/opts.NumFrames)

	for i := 0; i < opts.NumFrames; i++ {
		index := i * interval
		if index >= total {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := src.Seek(index); err != nil {
			logging.WarnWithContext(logger, "seek failed; skipping sample", "keyframe_seek_failed",
				logging.Int("frame_index", index),
				logging.Error(err),
				logging.String(logging.FieldImpact, "one uniform sample missing"),
			)
			continue
		}
		frame, err := src.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				warnReadFailure(logger, index, err)
			}
			break
		}
		frames = append(frames, Keyframe{
			FrameIndex: index,
			Timestamp:  video.Timestamp(src, index),
			Method:     MethodUniform,
			Image:      frame,
		})
	}
	return frames, nil
}

// scorer decides whether a sequentially decoded frame is a keyframe.
type scorer interface {
	score(index int, frame image.Image) (float64, bool, error)
}

func (e *Extractor) sequential(ctx context.Context, src video.Source, opts Options, logger *slog.Logger, sc scorer) ([]Keyframe, error) {
	frames := []Keyframe{}
	if err := src.Seek(0); err != nil {
		logging.WarnWithContext(logger, "rewind failed; no keyframes extracted", "keyframe_seek_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "empty keyframe set"),
		)
		return frames, nil
	}
	total := src.FrameCount()
	sampler := logging.NewProgressSampler(10)

	for index := 0; len(frames) < opts.MaxFrames; index++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := src.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				warnReadFailure(logger, index, err)
			}
			break
		}
		value, keep, err := sc.score(index, frame)
		if err != nil {
			warnReadFailure(logger, index, err)
			break
		}
		if keep {
			frames = append(frames, Keyframe{
				FrameIndex: index,
				Timestamp:  video.Timestamp(src, index),
				Method:     opts.Method,
				Score:      value,
				Image:      frame,
			})
		}
		if sampler.ShouldLogFrame(index+1, total, string(opts.Method)) {
			logger.Debug("scanning frames",
				logging.Int("frame", index+1),
				logging.Int("total_frames", total),
				logging.Int("keyframes", len(frames)),
			)
		}
	}
	return frames, nil
}

func warnReadFailure(logger *slog.Logger, index int, err error) {
	logging.WarnWithContext(logger, "frame read failed; ending pass early", "keyframe_read_failed",
		logging.Int("frame_index", index),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the file with ffprobe for corruption"),
		logging.String(logging.FieldImpact, "keyframes after this point are missing"),
	)
}

type differenceScorer struct {
	threshold float64
	width     int
	prev      *image.Gray
}

func newDifferenceScorer(opts Options) *differenceScorer {
	return &differenceScorer{threshold: opts.Threshold, width: opts.AnalysisWidth}
}

func (s *differenceScorer) score(index int, frame image.Image) (float64, bool, error) {
	gray := imaging.Gray(imaging.Downscale(frame, s.width))
	prev := s.prev
	s.prev = gray
	if prev == nil {
		return 0, true, nil
	}
	diff, err := imaging.MeanAbsDiff(prev, gray)
	if err != nil {
		return 0, false, err
	}
	return diff, diff > s.threshold, nil
}

type sceneScorer struct {
	threshold float64
	width     int
	model     *bgsub.Model
}

func newSceneScorer(opts Options) *sceneScorer {
	return &sceneScorer{
		threshold: opts.Threshold / 100,
		width:     opts.AnalysisWidth,
		model:     bgsub.New(bgsub.Options{History: opts.History}),
	}
}

func (s *sceneScorer) score(_ int, frame image.Image) (float64, bool, error) {
	mask, err := s.model.Apply(imaging.Gray(imaging.Downscale(frame, s.width)))
	if err != nil {
		return 0, false, err
	}
	motion := bgsub.MotionScore(mask)
	return motion, motion > s.threshold, nil
}
