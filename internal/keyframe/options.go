package keyframe

import (
	"fmt"
	"slices"
	"strings"

	"vidalign/internal/config"
	"vidalign/internal/imaging"
	"vidalign/internal/services"
)

// DefaultMaxFrames caps the sequential strategies when MaxFrames is zero.
const DefaultMaxFrames = 30

// Options configures a single extraction.
type Options struct {
	Method Method
	// NumFrames is the uniform sample count.
	NumFrames int
	// Threshold is the mean grey-level difference (difference) or the motion
	// percentage (scene) a frame must exceed to be kept.
	Threshold float64
	// MaxFrames caps difference and scene results. Zero selects DefaultMaxFrames.
	MaxFrames  int
	SaveFrames bool
	// OutputDir receives saved frames. Empty creates a fresh temporary directory.
	OutputDir   string
	ImageFormat string
	// AnalysisWidth downscales frames before scoring. Zero scores at full size.
	AnalysisWidth int
	// History is the background model window for the scene strategy.
	History int
}

// OptionsFromConfig seeds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{Method: MethodUniform, NumFrames: 10, MaxFrames: DefaultMaxFrames}
	}
	return Options{
		Method:        Method(cfg.Keyframes.Method),
		NumFrames:     cfg.Keyframes.NumFrames,
		Threshold:     cfg.Keyframes.Threshold,
		MaxFrames:     cfg.Keyframes.MaxFrames,
		SaveFrames:    cfg.Keyframes.SaveFrames,
		OutputDir:     cfg.Paths.OutputDir,
		ImageFormat:   cfg.Keyframes.ImageFormat,
		AnalysisWidth: cfg.Decoder.AnalysisWidth,
		History:       cfg.Keyframes.History,
	}
}

func (o Options) validate() (Options, error) {
	method, err := ParseMethod(string(o.Method))
	if err != nil {
		return o, err
	}
	o.Method = method
	if o.Threshold < 0 {
		return o, services.Wrap(services.ErrConfiguration, "keyframes", "validate options", fmt.Sprintf("threshold must be non-negative, got %v", o.Threshold), nil)
	}
	if o.MaxFrames < 0 {
		return o, services.Wrap(services.ErrConfiguration, "keyframes", "validate options", fmt.Sprintf("max frames must be non-negative, got %d", o.MaxFrames), nil)
	}
	if o.MaxFrames == 0 {
		o.MaxFrames = DefaultMaxFrames
	}
	format := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(o.ImageFormat), "."))
	if format == "" || format == "jpeg" {
		format = "jpg"
	}
	if !slices.Contains(imaging.Formats, format) {
		return o, services.Wrap(services.ErrConfiguration, "keyframes", "validate options", fmt.Sprintf("image format must be one of %s, got %q", strings.Join(imaging.Formats, ", "), o.ImageFormat), nil)
	}
	o.ImageFormat = format
	return o, nil
}
