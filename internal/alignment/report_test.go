package alignment_test

import (
	"context"
	"math"
	"reflect"
	"testing"

	"vidalign/internal/alignment"
	"vidalign/internal/logging"
	"vidalign/internal/scene"
	"vidalign/internal/subtitles"
)

func TestNewReport(t *testing.T) {
	alignments := []alignment.ContentAlignment{
		{Confidence: alignment.ConfidenceHigh, Scene: &scene.Scene{}, Warnings: []string{}},
		{Confidence: alignment.ConfidenceHigh, Scene: &scene.Scene{}, Warnings: []string{"offset", "other"}},
		{Confidence: alignment.ConfidenceMedium, Warnings: []string{}},
		{Confidence: alignment.ConfidenceLow, Warnings: []string{"none"}},
	}
	r := alignment.NewReport(alignments)
	if r.Total != 4 || r.High != 2 || r.Medium != 1 || r.Low != 1 {
		t.Fatalf("counts = %+v", r)
	}
	if math.Abs(r.AverageConfidence-0.7) > 1e-9 {
		t.Fatalf("average = %v, want 0.7", r.AverageConfidence)
	}
	if r.WarningCount != 2 || r.TotalWarnings != 3 {
		t.Fatalf("warnings = %d/%d", r.WarningCount, r.TotalWarnings)
	}
	if r.WarningPercentage != 50 || r.SceneCoverage != 50 {
		t.Fatalf("percentages = %v/%v", r.WarningPercentage, r.SceneCoverage)
	}

	if got := alignment.NewReport(nil); got != (alignment.Report{}) {
		t.Fatalf("empty report = %+v", got)
	}
}

func TestEnhanceSubtitleData(t *testing.T) {
	segments := []subtitles.Segment{{Start: 0, End: 1, Text: "a"}, {Start: 1, End: 2, Text: "b"}}
	alignments := []alignment.ContentAlignment{
		{
			Text: "a", Confidence: alignment.ConfidenceHigh, VisualContext: alignment.ContextDark,
			Scene:    &scene.Scene{SceneType: scene.TypeNight, Location: scene.LocationIndoor},
			Warnings: []string{},
		},
		{Text: "b", Confidence: alignment.ConfidenceLow, Warnings: []string{"no match"}},
	}
	original := append([]subtitles.Segment(nil), segments...)

	first := alignment.EnhanceSubtitleData(context.Background(), logging.NewNop(), segments, alignments)
	if len(first) != 2 {
		t.Fatalf("len = %d", len(first))
	}
	if first[0].SceneType != scene.TypeNight || first[0].Location != scene.LocationIndoor || first[0].VisualContext != alignment.ContextDark {
		t.Fatalf("first = %+v", first[0])
	}
	if first[0].AlignmentConfidence != alignment.ConfidenceHigh || first[0].Text != "a" {
		t.Fatalf("first = %+v", first[0])
	}
	if first[1].SceneType != "" || len(first[1].Warnings) != 1 {
		t.Fatalf("second = %+v", first[1])
	}
	if !reflect.DeepEqual(segments, original) {
		t.Fatal("input segments mutated")
	}

	first[1].Warnings[0] = "changed"
	if alignments[1].Warnings[0] != "no match" {
		t.Fatal("enriched warnings alias the alignment")
	}

	second := alignment.EnhanceSubtitleData(context.Background(), logging.NewNop(), segments, alignments)
	second[1].Warnings[0] = "changed"
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated enrichment differs:\n%+v\n%+v", first, second)
	}
}

func TestEnhanceSubtitleDataLengthMismatch(t *testing.T) {
	segments := []subtitles.Segment{{Start: 0, End: 1, Text: "a"}, {Start: 1, End: 2, Text: "b"}}
	aligner := alignment.NewAligner(nil, nil, logging.NewNop(), alignment.DefaultOptions())
	got := aligner.EnhanceSubtitleData(context.Background(), segments, []alignment.ContentAlignment{{Confidence: 0.9}})
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	for i, e := range got {
		if e.Segment != segments[i] || e.AlignmentConfidence != 0 || e.VisualContext != "" {
			t.Fatalf("entry %d = %+v, want plain copy", i, e)
		}
	}
}
