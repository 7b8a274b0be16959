// Package alignment maps subtitle segments onto video content.
//
// AlignWithVideo runs a uniform keyframe pass and an independent scene pass
// over one decoder handle, then matches each segment to its nearest keyframe
// and first overlapping scene. Confidence is 0.9 when both match, 0.7 when
// one does, and 0.3 with a mandatory warning when neither does. Keyframe
// offsets beyond the time tolerance add a sync warning without changing the
// tier.
//
// NewReport and EnhanceSubtitleData summarise and export the result.
package alignment
