// Package keyframe selects representative frames from a video.
//
// Three strategies are available. Uniform seeks to evenly spaced frame
// indices. Difference decodes every frame and keeps those whose mean grey-level
// change from the previous frame exceeds a threshold. Scene feeds every frame
// through an adaptive background model and keeps frames whose foreground
// fraction exceeds a percentage threshold. The sequential strategies stop at
// MaxFrames or end of stream.
//
// Extract owns the video handle it opens; ExtractFrom works on a handle the
// caller owns so several passes can share one decoder.
package keyframe
