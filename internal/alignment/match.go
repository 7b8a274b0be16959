package alignment

import (
	"fmt"
	"math"

	"vidalign/internal/imaging"
	"vidalign/internal/keyframe"
	"vidalign/internal/scene"
	"vidalign/internal/subtitles"
)

const noMatchWarning = "no keyframe or scene matched this segment"

// Align matches every segment to its nearest keyframe and first overlapping
// scene. The result has the same length and order as segments; keyframes
// and scenes are copied, never shared.
func Align(segments []subtitles.Segment, keyframes []keyframe.Keyframe, scenes []scene.Scene, opts Options) []ContentAlignment {
	opts = opts.normalized()
	out := make([]ContentAlignment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, alignSegment(seg, keyframes, scenes, opts))
	}
	return out
}

func alignSegment(seg subtitles.Segment, keyframes []keyframe.Keyframe, scenes []scene.Scene, opts Options) ContentAlignment {
	a := ContentAlignment{
		Text:     seg.Text,
		Start:    seg.Start,
		End:      seg.End,
		Warnings: []string{},
		Metadata: Metadata{SceneIndex: -1},
	}

	if idx := nearestKeyframe(keyframes, seg.Start); idx >= 0 {
		k := keyframes[idx].Clone()
		a.Keyframe = &k
		offset := k.Timestamp - seg.Start
		a.Metadata.KeyframeOffset = offset
		if math.Abs(offset) > opts.TimeTolerance {
			a.Warnings = append(a.Warnings, fmt.Sprintf("keyframe offset %.2fs exceeds tolerance %.2fs", math.Abs(offset), opts.TimeTolerance))
		}
	}

	if idx := firstOverlappingScene(scenes, seg); idx >= 0 {
		s := scenes[idx].Clone()
		a.Scene = &s
		a.Metadata.SceneIndex = idx
	}

	if opts.ExtractVisualContext && a.Keyframe != nil {
		if brightness, ok := keyframeBrightness(a.Keyframe, a.Scene, opts.AnalysisWidth); ok {
			a.Metadata.Brightness = brightness
			a.VisualContext = VisualContextFor(brightness)
		}
	}

	a.Confidence = ConfidenceFor(a.Keyframe != nil, a.Scene != nil)
	if a.Confidence == ConfidenceLow {
		a.Warnings = append(a.Warnings, noMatchWarning)
	}
	return a
}

// nearestKeyframe returns the index of the keyframe closest to ts, keeping
// the first on ties, or -1 for an empty slice.
func nearestKeyframe(keyframes []keyframe.Keyframe, ts float64) int {
	best := -1
	bestDelta := math.Inf(1)
	for i, k := range keyframes {
		if delta := math.Abs(k.Timestamp - ts); delta < bestDelta {
			best, bestDelta = i, delta
		}
	}
	return best
}

func firstOverlappingScene(scenes []scene.Scene, seg subtitles.Segment) int {
	for i, s := range scenes {
		if s.Overlaps(seg.Start, seg.End) {
			return i
		}
	}
	return -1
}

// keyframeBrightness measures the keyframe image, falling back to the
// scene's recorded brightness when the payload was dropped.
func keyframeBrightness(k *keyframe.Keyframe, s *scene.Scene, width int) (float64, bool) {
	if k.Image != nil {
		return imaging.Brightness(imaging.Downscale(k.Image, width)), true
	}
	if s != nil && s.Classified() {
		return s.Metadata.Brightness, true
	}
	return 0, false
}
