package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDecoder()
	c.normalizeKeyframes()
	c.normalizeScenes()
	c.normalizeAlignment()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StorePath) == "" {
		c.Paths.StorePath = defaultStorePath
	}
	if c.Paths.StorePath, err = expandPath(c.Paths.StorePath); err != nil {
		return fmt.Errorf("paths.store_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDecoder() {
	c.Decoder.FFmpegBinary = strings.TrimSpace(c.Decoder.FFmpegBinary)
	if value, ok := os.LookupEnv("VIDALIGN_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Decoder.FFmpegBinary = strings.TrimSpace(value)
	}
	if c.Decoder.FFmpegBinary == "" {
		c.Decoder.FFmpegBinary = defaultFFmpegBinary
	}
	c.Decoder.FFprobeBinary = strings.TrimSpace(c.Decoder.FFprobeBinary)
	if value, ok := os.LookupEnv("VIDALIGN_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Decoder.FFprobeBinary = strings.TrimSpace(value)
	}
	if c.Decoder.FFprobeBinary == "" {
		c.Decoder.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeKeyframes() {
	c.Keyframes.Method = strings.ToLower(strings.TrimSpace(c.Keyframes.Method))
	if c.Keyframes.Method == "" {
		c.Keyframes.Method = defaultKeyframeMethod
	}
	c.Keyframes.ImageFormat = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Keyframes.ImageFormat), "."))
	switch c.Keyframes.ImageFormat {
	case "":
		c.Keyframes.ImageFormat = defaultImageFormat
	case "jpeg":
		c.Keyframes.ImageFormat = "jpg"
	}
	if c.Keyframes.MaxFrames == 0 {
		c.Keyframes.MaxFrames = defaultKeyframeMaxFrames
	}
	if c.Keyframes.History == 0 {
		c.Keyframes.History = defaultBackgroundHistory
	}
}

func (c *Config) normalizeScenes() {
	if c.Scenes.MaxFrames == 0 {
		c.Scenes.MaxFrames = defaultSceneMaxFrames
	}
}

func (c *Config) normalizeAlignment() {
	if c.Alignment.MaxKeyframes == 0 {
		c.Alignment.MaxKeyframes = defaultAlignmentKeyframeCap
	}
	if c.Alignment.Workers <= 0 {
		c.Alignment.Workers = defaultAlignmentWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
