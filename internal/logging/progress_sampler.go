package logging

import "strings"

// ProgressSampler thins per-frame progress logs down to one line per
// percentage bucket, plus one whenever the pass changes.
type ProgressSampler struct {
	bucketSize float64
	lastPass   string
	lastBucket int
}

// NewProgressSampler constructs a sampler emitting every bucketSize percent
// (default 10%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether progress at percent within pass deserves a log
// line. A negative percent means the total is unknown and only pass changes
// emit.
func (s *ProgressSampler) ShouldLog(percent float64, pass string) bool {
	if s == nil {
		return true
	}
	pass = strings.TrimSpace(pass)
	emit := false
	if pass != "" && pass != s.lastPass {
		s.lastPass = pass
		s.lastBucket = -1
		emit = true
	}
	if percent >= 0 {
		if percent > 100 {
			percent = 100
		}
		bucket := int(percent / s.bucketSize)
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			emit = true
		}
	}
	return emit
}

// ShouldLogFrame is ShouldLog for frame counters. total <= 0 is treated as unknown.
func (s *ProgressSampler) ShouldLogFrame(done, total int, pass string) bool {
	return s.ShouldLog(FramePercent(done, total), pass)
}

// FramePercent converts a frame counter into a percentage, or -1 when total is unknown.
func FramePercent(done, total int) float64 {
	if total <= 0 {
		return -1
	}
	return float64(done) * 100 / float64(total)
}

// Reset clears the sampler state before a new video.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastPass = ""
	s.lastBucket = -1
}
