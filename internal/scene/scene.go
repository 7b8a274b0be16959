package scene

import (
	"vidalign/internal/keyframe"
)

// Scene types assigned by the brightness heuristic.
const (
	TypeNight  = "night"
	TypeIndoor = "indoor"
	TypeDay    = "day"
)

// Locations assigned by the saturation heuristic.
const (
	LocationIndoor  = "indoor"
	LocationOutdoor = "outdoor"
)

const (
	HeuristicConfidence  = 0.7
	ClassifierConfidence = 0.9
)

// Metadata holds classification measurements and hook output for a scene.
type Metadata struct {
	Brightness   float64     `json:"brightness"`
	Saturation   float64     `json:"saturation"`
	HueHistogram [18]float64 `json:"hue_histogram"`
	Classifier   string      `json:"classifier,omitempty"`
	OCRText      string      `json:"ocr_text,omitempty"`
	Transcript   string      `json:"transcript,omitempty"`
}

// Scene is a contiguous interval of the video treated as one visual unit.
// An empty Text means no subtitle overlaps it; an empty SceneType means it
// was never classified.
type Scene struct {
	Start      float64             `json:"start"`
	End        float64             `json:"end"`
	Keyframes  []keyframe.Keyframe `json:"keyframes"`
	Text       string              `json:"text,omitempty"`
	SceneType  string              `json:"scene_type,omitempty"`
	Location   string              `json:"location,omitempty"`
	Confidence float64             `json:"confidence"`
	Metadata   Metadata            `json:"metadata"`
}

// Duration returns End-Start.
func (s Scene) Duration() float64 { return s.End - s.Start }

// Classified reports whether a scene type has been assigned.
func (s Scene) Classified() bool { return s.SceneType != "" }

// Overlaps reports whether the half-open interval [start, end) intersects the scene.
func (s Scene) Overlaps(start, end float64) bool {
	return start < s.End && end > s.Start
}

// Clone deep-copies the scene including keyframe pixels.
func (s Scene) Clone() Scene {
	out := s
	out.Keyframes = keyframe.CloneAll(s.Keyframes)
	return out
}
