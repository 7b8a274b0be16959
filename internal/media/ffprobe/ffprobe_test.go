package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
     "r_frame_rate": "30000/1001", "avg_frame_rate": "30000/1001", "nb_frames": "1798", "duration": "60.0"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac"}
  ],
  "format": {"filename": "clip.mp4", "duration": "60.000", "size": "1000"}
}`

func TestParseVideoMetadata(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if got := result.FrameRate(); math.Abs(got-29.97) > 0.01 {
		t.Fatalf("FrameRate = %v, want ~29.97", got)
	}
	if got := result.FrameCount(); got != 1798 {
		t.Fatalf("FrameCount = %d, want 1798", got)
	}
	if got := result.DurationSeconds(); got != 60 {
		t.Fatalf("DurationSeconds = %v", got)
	}
	if w, h := result.Dimensions(); w != 1920 || h != 1080 {
		t.Fatalf("Dimensions = %dx%d", w, h)
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if len(result.RawJSON()) == 0 {
		t.Fatal("expected raw payload to be retained")
	}
}

func TestFrameCountEstimatedFromDuration(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", RFrameRate: "0/0", AvgFrameRate: "25/1"}},
		Format:  Format{Duration: "4.0"},
	}
	if got := result.FrameRate(); got != 25 {
		t.Fatalf("FrameRate = %v, want 25 from avg_frame_rate", got)
	}
	if got := result.FrameCount(); got != 100 {
		t.Fatalf("FrameCount = %d, want 100", got)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", RFrameRate: "abc", NBFrames: "N/A"}},
		Format:  Format{Duration: "bad", Size: "-1"},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", result.FrameRate())
	}
	if result.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", result.FrameCount())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}

func TestNoVideoStream(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if _, ok := result.VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
	if result.FrameCount() != 0 || result.FrameRate() != 0 {
		t.Fatal("expected zero metadata without a video stream")
	}
}

func TestInspectUsesBinary(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payload, []byte(samplePayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	script := filepath.Join(dir, "ffprobe")
	body := "#!/bin/sh\ncat " + payload + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), script, "/videos/clip.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.FrameCount() != 1798 {
		t.Fatalf("FrameCount = %d", result.FrameCount())
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestInspectReportsFailure(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'moov atom not found' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if _, err := Inspect(context.Background(), script, "/videos/broken.mp4"); err == nil {
		t.Fatal("expected error from failing ffprobe")
	}
}
