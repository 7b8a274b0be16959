package alignment

// Report aggregates an alignment run.
type Report struct {
	Total             int     `json:"total"`
	AverageConfidence float64 `json:"average_confidence"`
	// WarningCount is the number of alignments carrying at least one warning.
	WarningCount      int     `json:"warning_count"`
	TotalWarnings     int     `json:"total_warnings"`
	WarningPercentage float64 `json:"warning_percentage"`
	// SceneCoverage is the percentage of alignments matched to a scene.
	SceneCoverage float64 `json:"scene_coverage"`
	High          int     `json:"high"`
	Medium        int     `json:"medium"`
	Low           int     `json:"low"`
}

// NewReport summarises alignments. Empty input yields a zero report.
func NewReport(alignments []ContentAlignment) Report {
	var r Report
	r.Total = len(alignments)
	if r.Total == 0 {
		return r
	}
	var confidence float64
	withScene := 0
	for _, a := range alignments {
		confidence += a.Confidence
		if a.HasWarnings() {
			r.WarningCount++
		}
		r.TotalWarnings += len(a.Warnings)
		if a.Scene != nil {
			withScene++
		}
		switch {
		case a.Confidence >= ConfidenceHigh:
			r.High++
		case a.Confidence >= ConfidenceMedium:
			r.Medium++
		default:
			r.Low++
		}
	}
	total := float64(r.Total)
	r.AverageConfidence = confidence / total
	r.WarningPercentage = float64(r.WarningCount) / total * 100
	r.SceneCoverage = float64(withScene) / total * 100
	return r
}
