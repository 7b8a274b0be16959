package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDecoder(); err != nil {
		return err
	}
	if err := c.validateKeyframes(); err != nil {
		return err
	}
	if err := c.validateScenes(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDecoder() error {
	if c.Decoder.AnalysisWidth < 0 {
		return errors.New("decoder.analysis_width must be >= 0")
	}
	return nil
}

func (c *Config) validateKeyframes() error {
	switch c.Keyframes.Method {
	case "uniform", "difference", "scene":
	default:
		return fmt.Errorf("keyframes.method must be one of uniform, difference, scene (got %q)", c.Keyframes.Method)
	}
	switch c.Keyframes.ImageFormat {
	case "jpg", "png", "bmp":
	default:
		return fmt.Errorf("keyframes.image_format must be one of jpg, png, bmp (got %q)", c.Keyframes.ImageFormat)
	}
	if c.Keyframes.Threshold < 0 {
		return errors.New("keyframes.threshold must be >= 0")
	}
	if c.Keyframes.MaxFrames < 0 {
		return errors.New("keyframes.max_frames must be positive")
	}
	if c.Keyframes.History < 0 {
		return errors.New("keyframes.history must be positive")
	}
	return nil
}

func (c *Config) validateScenes() error {
	if c.Scenes.MinSceneDuration < 0 {
		return errors.New("scenes.min_scene_duration must be >= 0")
	}
	if c.Scenes.Threshold < 0 || c.Scenes.Threshold > 100 {
		return errors.New("scenes.threshold must be between 0 and 100")
	}
	if c.Scenes.MaxFrames < 0 {
		return errors.New("scenes.max_frames must be positive")
	}
	return nil
}

func (c *Config) validateAlignment() error {
	if c.Alignment.TimeTolerance < 0 {
		return errors.New("alignment.time_tolerance must be >= 0")
	}
	if c.Alignment.MaxKeyframes < 0 {
		return errors.New("alignment.max_keyframes must be positive")
	}
	if c.Alignment.Workers <= 0 {
		return errors.New("alignment.workers must be positive")
	}
	return nil
}
