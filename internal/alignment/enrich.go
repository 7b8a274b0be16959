package alignment

import (
	"context"
	"log/slog"

	"vidalign/internal/logging"
	"vidalign/internal/subtitles"
)

// EnrichedSegment is a subtitle segment annotated with its alignment.
type EnrichedSegment struct {
	subtitles.Segment
	VisualContext       string   `json:"visual_context,omitempty"`
	SceneType           string   `json:"scene_type,omitempty"`
	Location            string   `json:"location,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
	AlignmentConfidence float64  `json:"alignment_confidence"`
}

// EnhanceSubtitleData annotates copies of segments with the alignment at the
// same index. When the lengths differ it logs a warning and returns plain
// copies. Neither input is modified.
func EnhanceSubtitleData(ctx context.Context, logger *slog.Logger, segments []subtitles.Segment, alignments []ContentAlignment) []EnrichedSegment {
	out := make([]EnrichedSegment, len(segments))
	for i, seg := range segments {
		out[i] = EnrichedSegment{Segment: seg}
	}
	if len(segments) != len(alignments) {
		logging.WarnWithContext(logging.WithContext(ctx, logging.NewComponentLogger(logger, "alignment")),
			"segment and alignment counts differ; returning segments unchanged", "enrichment_length_mismatch",
			logging.Int("segments", len(segments)),
			logging.Int("alignments", len(alignments)),
			logging.String(logging.FieldErrorHint, "pass the alignments produced for these segments"),
			logging.String(logging.FieldImpact, "segments carry no visual annotations"),
		)
		return out
	}
	for i, a := range alignments {
		e := &out[i]
		e.VisualContext = a.VisualContext
		e.AlignmentConfidence = a.Confidence
		if len(a.Warnings) > 0 {
			e.Warnings = append([]string(nil), a.Warnings...)
		}
		if a.Scene != nil {
			e.SceneType = a.Scene.SceneType
			e.Location = a.Scene.Location
		}
	}
	return out
}

// EnhanceSubtitleData is the Aligner-bound form of the package function.
func (a *Aligner) EnhanceSubtitleData(ctx context.Context, segments []subtitles.Segment, alignments []ContentAlignment) []EnrichedSegment {
	return EnhanceSubtitleData(ctx, a.logger, segments, alignments)
}
