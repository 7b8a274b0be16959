package alignment

import (
	"vidalign/internal/keyframe"
	"vidalign/internal/scene"
)

// Confidence tiers.
const (
	ConfidenceHigh   = 0.9
	ConfidenceMedium = 0.7
	ConfidenceLow    = 0.3
)

// Visual context labels derived from keyframe brightness.
const (
	ContextDark   = "dark scene"
	ContextBright = "bright scene"
	ContextNormal = "normal brightness scene"

	DarkBrightness   = 80
	BrightBrightness = 200
)

// Metadata records how an alignment was derived.
type Metadata struct {
	// KeyframeOffset is the matched keyframe's timestamp minus the segment start.
	KeyframeOffset float64 `json:"keyframe_offset"`
	Brightness     float64 `json:"brightness"`
	// SceneIndex is the matched scene's position, or -1 when none overlapped.
	SceneIndex int `json:"scene_index"`
}

// ContentAlignment ties one subtitle segment to the visual content at its
// time. Keyframe and Scene are private copies owned by the alignment.
type ContentAlignment struct {
	Text          string             `json:"text"`
	Start         float64            `json:"start"`
	End           float64            `json:"end"`
	Keyframe      *keyframe.Keyframe `json:"keyframe,omitempty"`
	Scene         *scene.Scene       `json:"scene,omitempty"`
	Confidence    float64            `json:"confidence"`
	VisualContext string             `json:"visual_context,omitempty"`
	Warnings      []string           `json:"warnings"`
	Metadata      Metadata           `json:"metadata"`
}

// HasWarnings reports whether any warning was recorded.
func (c ContentAlignment) HasWarnings() bool { return len(c.Warnings) > 0 }

// VisualContextFor maps a brightness value to a visual context label.
func VisualContextFor(brightness float64) string {
	switch {
	case brightness < DarkBrightness:
		return ContextDark
	case brightness > BrightBrightness:
		return ContextBright
	default:
		return ContextNormal
	}
}

// ConfidenceFor returns the tier for the matches found.
func ConfidenceFor(hasKeyframe, hasScene bool) float64 {
	switch {
	case hasKeyframe && hasScene:
		return ConfidenceHigh
	case hasKeyframe || hasScene:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
