package subtitles

import "math"

// Segment is one timed subtitle line. Times are in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns End-Start, floored at zero.
func (s Segment) Duration() float64 {
	return math.Max(0, s.End-s.Start)
}

// Overlaps reports whether the segment intersects the half-open interval [start, end).
func (s Segment) Overlaps(start, end float64) bool {
	return s.Start < end && s.End > start
}

// Bounds returns the earliest start and latest end across segments.
func Bounds(segments []Segment) (float64, float64) {
	if len(segments) == 0 {
		return 0, 0
	}
	first := math.Inf(1)
	var last float64
	for _, seg := range segments {
		first = math.Min(first, seg.Start)
		last = math.Max(last, seg.End)
	}
	return first, last
}
