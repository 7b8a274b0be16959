package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"vidalign/internal/imaging"
	"vidalign/internal/logging"
	"vidalign/internal/video"
)

// Brightness and saturation cut-offs for the heuristic classifier.
const (
	NightBrightness   = 80
	DayBrightness     = 160
	OutdoorSaturation = 100
)

// Heuristic maps frame statistics to a scene type and location.
func Heuristic(stats imaging.ColorStats) (string, string) {
	sceneType := TypeIndoor
	switch {
	case stats.Brightness < NightBrightness:
		sceneType = TypeNight
	case stats.Brightness > DayBrightness:
		sceneType = TypeDay
	}
	location := LocationIndoor
	if sceneType != TypeNight && stats.Saturation > OutdoorSaturation {
		location = LocationOutdoor
	}
	return sceneType, location
}

// Classify applies the brightness/saturation heuristic to every scene. The
// representative frame is the middle keyframe's image, or a decode at the
// scene midpoint from src when that is unavailable. Scenes without a usable
// frame stay unclassified. It returns the number of scenes classified.
func (a *Analyzer) Classify(ctx context.Context, src video.Source, scenes []Scene) (int, error) {
	logger := logging.WithContext(ctx, a.logger)
	classified := 0
	for i := range scenes {
		if err := ctx.Err(); err != nil {
			return classified, err
		}
		frame, err := representativeFrame(src, scenes[i])
		if err != nil {
			logging.WarnWithContext(logger, "no representative frame; scene left unclassified", "scene_frame_unavailable",
				logging.Int("scene", i),
				logging.Float64("start", scenes[i].Start),
				logging.Float64("end", scenes[i].End),
				logging.Error(err),
				logging.String(logging.FieldImpact, "scene has no type or location"),
			)
			continue
		}
		stats := imaging.Analyze(imaging.Downscale(frame, a.opts.AnalysisWidth))
		sceneType, location := Heuristic(stats)
		scenes[i].SceneType = sceneType
		scenes[i].Location = location
		scenes[i].Confidence = HeuristicConfidence
		scenes[i].Metadata.Brightness = stats.Brightness
		scenes[i].Metadata.Saturation = stats.Saturation
		scenes[i].Metadata.HueHistogram = stats.HueHistogram
		classified++
	}
	return classified, nil
}

func representativeFrame(src video.Source, s Scene) (image.Image, error) {
	if n := len(s.Keyframes); n > 0 {
		if img := s.Keyframes[n/2].Image; img != nil {
			return img, nil
		}
	}
	if src == nil {
		return nil, errors.New("no keyframe image and no video source")
	}
	mid := video.FrameAt(src, (s.Start+s.End)/2)
	if err := src.Seek(mid); err != nil {
		return nil, err
	}
	frame, err := src.ReadFrame()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("frame %d: %w", mid, io.ErrUnexpectedEOF)
	}
	return frame, err
}

// ClassifyScenes lets classifier override scene types. Per-scene failures
// are logged and skipped. It returns the number of scenes overridden.
func (a *Analyzer) ClassifyScenes(ctx context.Context, scenes []Scene, classifier Classifier) int {
	if classifier == nil {
		return 0
	}
	logger := logging.WithContext(ctx, a.logger).With(logging.String("classifier", classifier.Name()))
	overridden := 0
	for i := range scenes {
		if ctx.Err() != nil {
			break
		}
		sceneType, err := classifier.Classify(ctx, scenes[i])
		if errors.Is(err, ErrHookDisabled) {
			logger.Debug("scene classifier disabled")
			return overridden
		}
		if err != nil {
			logging.WarnWithContext(logger, "scene classifier failed", "scene_classifier_failed",
				logging.Int("scene", i),
				logging.Error(err),
				logging.String(logging.FieldImpact, "heuristic scene type kept"),
			)
			continue
		}
		if sceneType == "" {
			continue
		}
		scenes[i].SceneType = sceneType
		scenes[i].Confidence = ClassifierConfidence
		scenes[i].Metadata.Classifier = classifier.Name()
		overridden++
	}
	return overridden
}
