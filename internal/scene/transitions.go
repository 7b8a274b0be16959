package scene

// CutThreshold is the largest gap, in seconds, still counted as a hard cut.
const CutThreshold = 0.1

// UnknownType labels unclassified scenes in transition summaries.
const UnknownType = "unknown"

// Transition describes the boundary between two adjacent scenes.
type Transition struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Gap   float64 `json:"gap"`
	IsCut bool    `json:"is_cut"`
}

// TransitionSummary aggregates scene transitions and type statistics.
type TransitionSummary struct {
	Transitions     []Transition   `json:"transitions"`
	TypeCounts      map[string]int `json:"type_counts"`
	AverageDuration float64        `json:"average_duration"`
	SceneCount      int            `json:"scene_count"`
}

// AnalyzeTransitions summarises adjacent scene pairs. Empty input yields a
// zero summary.
func AnalyzeTransitions(scenes []Scene) TransitionSummary {
	summary := TransitionSummary{
		Transitions: []Transition{},
		TypeCounts:  map[string]int{},
		SceneCount:  len(scenes),
	}
	if len(scenes) == 0 {
		return summary
	}
	var total float64
	for i, s := range scenes {
		summary.TypeCounts[typeLabel(s)]++
		total += s.Duration()
		if i+1 < len(scenes) {
			next := scenes[i+1]
			gap := next.Start - s.End
			summary.Transitions = append(summary.Transitions, Transition{
				From:  typeLabel(s),
				To:    typeLabel(next),
				Gap:   gap,
				IsCut: gap < CutThreshold,
			})
		}
	}
	summary.AverageDuration = total / float64(len(scenes))
	return summary
}

func typeLabel(s Scene) string {
	if s.SceneType == "" {
		return UnknownType
	}
	return s.SceneType
}
