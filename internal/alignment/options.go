package alignment

import "vidalign/internal/config"

// Options tunes an alignment run.
type Options struct {
	// TimeTolerance is the largest keyframe offset, in seconds, accepted
	// without a sync warning.
	TimeTolerance        float64
	ExtractVisualContext bool
	// MaxKeyframes caps the uniform keyframe pass.
	MaxKeyframes  int
	AnalysisWidth int
}

func DefaultOptions() Options {
	return Options{TimeTolerance: 0.5, ExtractVisualContext: true, MaxKeyframes: 100}
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		TimeTolerance:        cfg.Alignment.TimeTolerance,
		ExtractVisualContext: cfg.Alignment.ExtractVisualContext,
		MaxKeyframes:         cfg.Alignment.MaxKeyframes,
		AnalysisWidth:        cfg.Decoder.AnalysisWidth,
	}
}

func (o Options) normalized() Options {
	if o.TimeTolerance < 0 {
		o.TimeTolerance = 0
	}
	if o.MaxKeyframes <= 0 {
		o.MaxKeyframes = DefaultOptions().MaxKeyframes
	}
	return o
}
