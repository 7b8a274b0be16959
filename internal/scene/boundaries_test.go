package scene_test

import (
	"math"
	"testing"

	"vidalign/internal/keyframe"
	"vidalign/internal/scene"
)

func kf(ts, score float64) keyframe.Keyframe {
	return keyframe.Keyframe{FrameIndex: int(ts * 10), Timestamp: ts, Method: keyframe.MethodScene, Score: score}
}

func assertCoverage(t *testing.T, scenes []scene.Scene, duration float64) {
	t.Helper()
	if len(scenes) == 0 {
		t.Fatal("expected scenes")
	}
	if scenes[0].Start != 0 {
		t.Fatalf("first scene starts at %v, want 0", scenes[0].Start)
	}
	for i, s := range scenes {
		if s.End <= s.Start {
			t.Fatalf("scene %d is empty or inverted: [%v, %v)", i, s.Start, s.End)
		}
		if i > 0 && s.Start != scenes[i-1].End {
			t.Fatalf("scene %d starts at %v, previous ended at %v", i, s.Start, scenes[i-1].End)
		}
	}
	if last := scenes[len(scenes)-1].End; math.Abs(last-duration) > 1e-9 {
		t.Fatalf("last scene ends at %v, want %v", last, duration)
	}
}

func TestIdentifyScenes(t *testing.T) {
	keyframes := []keyframe.Keyframe{kf(8, 0.1), kf(1, 0.5), kf(3.5, 0.5), kf(3, 0.5)}
	scenes := scene.IdentifyScenes(keyframes, 10, scene.BoundaryOptions{MinSceneDuration: 2, Threshold: 30})

	want := []struct {
		start, end float64
		keyframes  int
	}{
		{0, 3, 2},
		{3, 8, 2},
		{8, 10, 0},
	}
	if len(scenes) != len(want) {
		t.Fatalf("got %d scenes, want %d: %+v", len(scenes), len(want), scenes)
	}
	for i, w := range want {
		s := scenes[i]
		if s.Start != w.start || s.End != w.end || len(s.Keyframes) != w.keyframes {
			t.Errorf("scene %d = [%v, %v) with %d keyframes, want [%v, %v) with %d", i, s.Start, s.End, len(s.Keyframes), w.start, w.end, w.keyframes)
		}
	}
	if keyframes[0].Timestamp != 8 {
		t.Fatal("input slice was reordered")
	}
}

func TestIdentifyScenesCoverage(t *testing.T) {
	tests := []struct {
		name      string
		keyframes []keyframe.Keyframe
		duration  float64
		opts      scene.BoundaryOptions
	}{
		{"single low-motion keyframe", []keyframe.Keyframe{kf(4, 0.01)}, 10, scene.BoundaryOptions{MinSceneDuration: 2, Threshold: 30}},
		{"dense keyframes", []keyframe.Keyframe{kf(0.5, 1), kf(1, 1), kf(1.5, 1), kf(2, 1), kf(2.5, 1), kf(9, 1)}, 12, scene.BoundaryOptions{MinSceneDuration: 1, Threshold: 30}},
		{"last keyframe at end", []keyframe.Keyframe{kf(2, 1), kf(6, 1)}, 6, scene.BoundaryOptions{MinSceneDuration: 2, Threshold: 30}},
		{"no minimum", []keyframe.Keyframe{kf(0, 1), kf(0.1, 1), kf(0.2, 0)}, 1, scene.BoundaryOptions{Threshold: 30}},
		{"nothing exceeds threshold", []keyframe.Keyframe{kf(1, 0.2), kf(2, 0.2), kf(3, 0.2)}, 5, scene.BoundaryOptions{MinSceneDuration: 0.5, Threshold: 90}},
		{"keyframes clamped to the end", []keyframe.Keyframe{kf(2, 1), kf(5, 1), kf(5, 1), kf(5, 1)}, 5, scene.BoundaryOptions{MinSceneDuration: 1, Threshold: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenes := scene.IdentifyScenes(tt.keyframes, tt.duration, tt.opts)
			assertCoverage(t, scenes, tt.duration)
			kept := 0
			for _, s := range scenes {
				kept += len(s.Keyframes)
			}
			if kept != len(tt.keyframes) {
				t.Fatalf("scenes hold %d keyframes, want %d", kept, len(tt.keyframes))
			}
		})
	}
}

func TestIdentifyScenesSuppressesZeroLength(t *testing.T) {
	scenes := scene.IdentifyScenes([]keyframe.Keyframe{kf(0, 1)}, 5, scene.BoundaryOptions{Threshold: 30})
	if len(scenes) != 1 || scenes[0].Start != 0 || scenes[0].End != 5 {
		t.Fatalf("scenes = %+v", scenes)
	}
	if len(scenes[0].Keyframes) != 1 {
		t.Fatal("suppressed boundary keyframe should stay with the trailing scene")
	}
}

func TestIdentifyScenesEmpty(t *testing.T) {
	scenes := scene.IdentifyScenes(nil, 10, scene.BoundaryOptions{MinSceneDuration: 2})
	if scenes == nil || len(scenes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", scenes)
	}
}

func TestSceneCloneIsDeep(t *testing.T) {
	s := scene.Scene{Start: 0, End: 1, Keyframes: []keyframe.Keyframe{kf(0.5, 1)}}
	clone := s.Clone()
	clone.Keyframes[0].Score = 0
	if s.Keyframes[0].Score != 1 {
		t.Fatal("clone shares keyframe storage")
	}
}
