package keyframe

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"vidalign/internal/config"
	"vidalign/internal/services"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"uniform", MethodUniform, false},
		{" Difference ", MethodDifference, false},
		{"SCENE", MethodScene, false},
		{"optical-flow", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.wantErr {
			if !errors.Is(err, services.ErrConfiguration) {
				t.Errorf("ParseMethod(%q) err = %v, want ErrConfiguration", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestCloneCopiesPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 10, A: 255})
	k := Keyframe{FrameIndex: 4, Timestamp: 0.4, Method: MethodScene, Score: 0.5, Image: img}

	clone := k.Clone()
	img.Set(0, 0, color.RGBA{R: 99, A: 255})

	if clone.FrameIndex != 4 || clone.Score != 0.5 || clone.Method != MethodScene {
		t.Fatalf("clone lost fields: %+v", clone)
	}
	if clone.Image.(*image.RGBA).RGBAAt(0, 0).R != 10 {
		t.Fatal("clone aliases the original pixel buffer")
	}
	if CloneAll(nil) != nil {
		t.Fatal("CloneAll(nil) should be nil")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Keyframes.Method = "scene"
	cfg.Decoder.AnalysisWidth = 160
	opts := OptionsFromConfig(&cfg)
	if opts.Method != MethodScene || opts.AnalysisWidth != 160 || opts.MaxFrames != cfg.Keyframes.MaxFrames {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if def := OptionsFromConfig(nil); def.Method != MethodUniform {
		t.Fatalf("nil config options = %+v", def)
	}
}

func TestFrameFileName(t *testing.T) {
	k := Keyframe{Method: MethodDifference, Timestamp: 12.346}
	if got := FrameFileName("/media/My Movie.mkv", 7, k, "bmp"); got != "My Movie_frame007_difference_12.35s.bmp" {
		t.Fatalf("FrameFileName = %q", got)
	}
	odd := Keyframe{Method: Method("Scene/Cut"), Timestamp: 1}
	if got := FrameFileName("clip.mp4", 0, odd, "jpg"); got != "clip_frame000_scene_cut_1.00s.jpg" {
		t.Fatalf("FrameFileName with unsafe method = %q", got)
	}
}
