package keyframe

import (
	"fmt"
	"image"
	"strings"

	"vidalign/internal/imaging"
	"vidalign/internal/services"
)

// Method names a keyframe selection strategy.
type Method string

const (
	MethodUniform    Method = "uniform"
	MethodDifference Method = "difference"
	MethodScene      Method = "scene"
)

// ParseMethod resolves a method name case-insensitively.
func ParseMethod(value string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(value))); m {
	case MethodUniform, MethodDifference, MethodScene:
		return m, nil
	default:
		return "", services.Wrap(services.ErrConfiguration, "keyframes", "parse method", fmt.Sprintf("unknown method %q", value), nil)
	}
}

// Keyframe is a decoded frame selected by an extraction strategy.
type Keyframe struct {
	FrameIndex int     `json:"frame_index"`
	Timestamp  float64 `json:"timestamp"`
	Method     Method  `json:"method"`
	// Score is the difference or motion score that selected the frame; 0 for uniform.
	Score float64     `json:"score"`
	Image image.Image `json:"-"`
	// Path is set once the frame has been written to disk.
	Path string `json:"path,omitempty"`
}

// Clone returns a copy that shares no pixel memory with k.
func (k Keyframe) Clone() Keyframe {
	out := k
	out.Image = imaging.Clone(k.Image)
	return out
}

// CloneAll deep-copies a keyframe slice.
func CloneAll(frames []Keyframe) []Keyframe {
	if frames == nil {
		return nil
	}
	out := make([]Keyframe, len(frames))
	for i, k := range frames {
		out[i] = k.Clone()
	}
	return out
}
