package scene

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vidalign/internal/config"
	"vidalign/internal/keyframe"
	"vidalign/internal/logging"
	"vidalign/internal/services"
	"vidalign/internal/subtitles"
	"vidalign/internal/video"
)

// Options tunes scene analysis.
type Options struct {
	MinSceneDuration float64
	// Threshold is the motion percentage used for both keyframe extraction
	// and boundary detection.
	Threshold     float64
	MaxFrames     int
	AnalysisWidth int
	History       int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{MinSceneDuration: 2.0, Threshold: 30, MaxFrames: keyframe.DefaultMaxFrames}
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		MinSceneDuration: cfg.Scenes.MinSceneDuration,
		Threshold:        cfg.Scenes.Threshold,
		MaxFrames:        cfg.Scenes.MaxFrames,
		AnalysisWidth:    cfg.Decoder.AnalysisWidth,
		History:          cfg.Keyframes.History,
	}
}

// Option customises an Analyzer.
type Option func(*Analyzer)

// WithClassifier installs a classifier that runs after the heuristic.
func WithClassifier(c Classifier) Option {
	return func(a *Analyzer) { a.classifier = c }
}

// WithOCR installs an on-screen text extractor.
func WithOCR(t TextExtractor) Option {
	return func(a *Analyzer) { a.ocr = t }
}

// WithSpeech installs a speech transcription extractor.
func WithSpeech(t TextExtractor) Option {
	return func(a *Analyzer) { a.speech = t }
}

// Analyzer partitions videos into classified scenes.
type Analyzer struct {
	opener     video.Opener
	extractor  *keyframe.Extractor
	logger     *slog.Logger
	opts       Options
	classifier Classifier
	ocr        TextExtractor
	speech     TextExtractor
}

func NewAnalyzer(opener video.Opener, logger *slog.Logger, opts Options, options ...Option) *Analyzer {
	a := &Analyzer{
		opener:    opener,
		extractor: keyframe.NewExtractor(opener, logger),
		logger:    logging.NewComponentLogger(logger, "scene"),
		opts:      opts,
		ocr:       DisabledExtractor("ocr"),
		speech:    DisabledExtractor("speech"),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Options returns the analyzer's configuration.
func (a *Analyzer) Options() Options { return a.opts }

// Analyze opens path and runs AnalyzeSource on it.
func (a *Analyzer) Analyze(ctx context.Context, path string, segments []subtitles.Segment) ([]Scene, error) {
	if a.opener == nil {
		return nil, services.NewMediaProcessingError(path, "open", errors.New("no video opener configured"))
	}
	src, err := a.opener.Open(ctx, path)
	if err != nil {
		var mpe *services.MediaProcessingError
		if errors.As(err, &mpe) {
			return nil, err
		}
		return nil, services.NewMediaProcessingError(path, "open", err)
	}
	defer src.Close()
	return a.AnalyzeSource(ctx, src, segments)
}

// AnalyzeSource extracts scene-change keyframes from src, partitions the
// timeline, attaches overlapping subtitle text, classifies each scene, and
// runs the optional text hooks.
func (a *Analyzer) AnalyzeSource(ctx context.Context, src video.Source, segments []subtitles.Segment) ([]Scene, error) {
	ctx = services.WithStage(ctx, "scene_analysis")
	logger := logging.WithContext(ctx, a.logger)
	start := time.Now()

	keyframes, err := a.extractor.ExtractFrom(ctx, src, keyframe.Options{
		Method:        keyframe.MethodScene,
		Threshold:     a.opts.Threshold,
		MaxFrames:     a.opts.MaxFrames,
		AnalysisWidth: a.opts.AnalysisWidth,
		History:       a.opts.History,
	})
	if err != nil {
		return nil, err
	}

	scenes := IdentifyScenes(keyframes, src.Duration(), BoundaryOptions{
		MinSceneDuration: a.opts.MinSceneDuration,
		Threshold:        a.opts.Threshold,
	})
	AttachText(scenes, segments)

	classified, err := a.Classify(ctx, src, scenes)
	if err != nil {
		return nil, err
	}
	overridden := a.ClassifyScenes(ctx, scenes, a.classifier)
	a.runTextHooks(ctx, src, scenes)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("scene analysis complete",
		logging.Int("keyframes", len(keyframes)),
		logging.Int("scenes", len(scenes)),
		logging.Int("classified", classified),
		logging.Int("classifier_overrides", overridden),
		logging.Duration("elapsed", time.Since(start)),
	)
	return scenes, nil
}

func (a *Analyzer) runTextHooks(ctx context.Context, src video.Source, scenes []Scene) {
	a.runTextHook(ctx, src, scenes, a.ocr, func(s *Scene, text string) { s.Metadata.OCRText = text })
	a.runTextHook(ctx, src, scenes, a.speech, func(s *Scene, text string) { s.Metadata.Transcript = text })
}

func (a *Analyzer) runTextHook(ctx context.Context, src video.Source, scenes []Scene, hook TextExtractor, assign func(*Scene, string)) {
	if hook == nil {
		return
	}
	logger := logging.WithContext(ctx, a.logger).With(logging.String("hook", hook.Name()))
	for i := range scenes {
		if ctx.Err() != nil {
			return
		}
		text, err := hook.ExtractText(ctx, src, scenes[i])
		if errors.Is(err, ErrHookDisabled) {
			logger.Debug("text hook disabled; skipping")
			return
		}
		if err != nil {
			logging.WarnWithContext(logger, "text hook failed", "scene_hook_failed",
				logging.Int("scene", i),
				logging.Error(err),
				logging.String(logging.FieldImpact, "scene metadata missing hook text"),
			)
			continue
		}
		assign(&scenes[i], text)
	}
}
