package scene

import (
	"sort"

	"vidalign/internal/keyframe"
)

// BoundaryOptions controls scene boundary detection.
type BoundaryOptions struct {
	// MinSceneDuration is the shortest emitted scene in seconds; only the
	// trailing scene may be shorter.
	MinSceneDuration float64
	// Threshold is a motion percentage; keyframes scoring above Threshold/100
	// may close a scene.
	Threshold float64
}

// IdentifyScenes partitions [0, duration) into scenes closed at keyframes
// with enough motion. The input slice is not modified.
func IdentifyScenes(keyframes []keyframe.Keyframe, duration float64, opts BoundaryOptions) []Scene {
	scenes := []Scene{}
	if len(keyframes) == 0 {
		return scenes
	}
	ordered := append([]keyframe.Keyframe(nil), keyframes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	threshold := opts.Threshold / 100
	current := 0.0
	var buffer []keyframe.Keyframe
	for i, k := range ordered {
		buffer = append(buffer, k)
		last := i == len(ordered)-1
		if k.Timestamp-current < opts.MinSceneDuration || !(k.Score > threshold || last) {
			continue
		}
		// A boundary at the current start would produce an empty scene.
		if k.Timestamp <= current {
			continue
		}
		scenes = append(scenes, Scene{Start: current, End: k.Timestamp, Keyframes: keyframe.CloneAll(buffer)})
		buffer = buffer[:0]
		current = k.Timestamp
	}
	switch {
	case current < duration:
		scenes = append(scenes, Scene{Start: current, End: duration, Keyframes: keyframe.CloneAll(buffer)})
	case len(buffer) > 0 && len(scenes) > 0:
		// Keyframes stamped at or past the end still belong to the closing scene.
		tail := &scenes[len(scenes)-1]
		tail.Keyframes = append(tail.Keyframes, keyframe.CloneAll(buffer)...)
	}
	return scenes
}
