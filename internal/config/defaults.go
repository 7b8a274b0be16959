package config

const (
	defaultOutputDir            = "~/.local/share/vidalign/frames"
	defaultLogDir               = "~/.local/share/vidalign/logs"
	defaultStorePath            = "~/.local/share/vidalign/runs.db"
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultAnalysisWidth        = 320
	defaultKeyframeMethod       = "uniform"
	defaultKeyframeNumFrames    = 10
	defaultDifferenceThreshold  = 30.0
	defaultKeyframeMaxFrames    = 30
	defaultImageFormat          = "jpg"
	defaultBackgroundHistory    = 500
	defaultMinSceneDuration     = 2.0
	defaultSceneThreshold       = 30.0
	defaultSceneMaxFrames       = 30
	defaultTimeTolerance        = 0.5
	defaultAlignmentKeyframeCap = 100
	defaultAlignmentWorkers     = 2
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StorePath: defaultStorePath,
		},
		Decoder: Decoder{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			AnalysisWidth: defaultAnalysisWidth,
		},
		Keyframes: Keyframes{
			Method:      defaultKeyframeMethod,
			NumFrames:   defaultKeyframeNumFrames,
			Threshold:   defaultDifferenceThreshold,
			MaxFrames:   defaultKeyframeMaxFrames,
			ImageFormat: defaultImageFormat,
			History:     defaultBackgroundHistory,
		},
		Scenes: Scenes{
			MinSceneDuration: defaultMinSceneDuration,
			Threshold:        defaultSceneThreshold,
			MaxFrames:        defaultSceneMaxFrames,
		},
		Alignment: Alignment{
			TimeTolerance:        defaultTimeTolerance,
			ExtractVisualContext: true,
			MaxKeyframes:         defaultAlignmentKeyframeCap,
			Workers:              defaultAlignmentWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
