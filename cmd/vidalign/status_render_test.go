package main

import (
	"fmt"
	"strings"
	"testing"

	"vidalign/internal/alignment"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Log directory", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Log directory:", "[ERROR] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ffmpeg 7.1", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeBuffer(t *testing.T) {
	if shouldColorize(&strings.Builder{}) {
		t.Fatal("non-file writers must not be colorized")
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := map[string]string{
		"night":   "Night",
		"outdoor": "Outdoor",
		"":        "-",
		"  day ":  "Day",
	}
	for input, want := range tests {
		if got := displayLabel(input); got != want {
			t.Errorf("displayLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestConfidenceKind(t *testing.T) {
	tests := []struct {
		confidence float64
		want       statusKind
	}{
		{alignment.ConfidenceHigh, statusOK},
		{alignment.ConfidenceMedium, statusInfo},
		{alignment.ConfidenceLow, statusWarn},
	}
	for _, tt := range tests {
		if got := confidenceKind(tt.confidence); got != tt.want {
			t.Errorf("confidenceKind(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}

func TestRenderReport(t *testing.T) {
	r := alignment.NewReport([]alignment.ContentAlignment{
		{Confidence: alignment.ConfidenceHigh, Warnings: []string{}},
		{Confidence: alignment.ConfidenceLow, Warnings: []string{"none matched"}},
	})
	joined := strings.Join(renderReport(r, false), "\n")
	for _, want := range []string{"Alignment report", "0.60", "high 1, medium 0, low 1", "1 segments (50.0%), 1 total"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("report missing %q:\n%s", want, joined)
		}
	}
}

func TestParseJob(t *testing.T) {
	job, err := parseJob(" a.mp4 = a.srt ")
	if err != nil || job.Video != "a.mp4" || job.Subtitles != "a.srt" {
		t.Fatalf("parseJob = %+v, %v", job, err)
	}
	for _, bad := range []string{"a.mp4", "=a.srt", "a.mp4="} {
		if _, err := parseJob(bad); err == nil {
			t.Errorf("parseJob(%q) should fail", bad)
		}
	}
}
