package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vidalign/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	StorePath string `toml:"store_path"`
}

// Decoder contains configuration for the ffmpeg-backed video source.
type Decoder struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	// AnalysisWidth bounds the width of decoded frames handed to the scoring
	// code. Zero decodes at the native resolution.
	AnalysisWidth int `toml:"analysis_width"`
	// AutoCrop runs letterbox detection before decoding so black bars do not
	// skew brightness statistics.
	AutoCrop bool `toml:"auto_crop"`
}

// Keyframes contains defaults for standalone keyframe extraction.
type Keyframes struct {
	Method      string  `toml:"method"`
	NumFrames   int     `toml:"num_frames"`
	Threshold   float64 `toml:"threshold"`
	MaxFrames   int     `toml:"max_frames"`
	SaveFrames  bool    `toml:"save_frames"`
	ImageFormat string  `toml:"image_format"`
	History     int     `toml:"history"`
}

// Scenes contains scene boundary detection settings.
type Scenes struct {
	// MinSceneDuration is the shortest scene, in seconds, that boundary
	// detection will emit (the trailing scene is exempt).
	MinSceneDuration float64 `toml:"min_scene_duration"`
	// Threshold is the motion threshold in percent; a keyframe whose motion
	// score exceeds Threshold/100 may close a scene.
	Threshold float64 `toml:"threshold"`
	MaxFrames int     `toml:"max_frames"`
}

// Alignment contains settings for subtitle to video alignment.
type Alignment struct {
	TimeTolerance        float64 `toml:"time_tolerance"`
	ExtractVisualContext bool    `toml:"extract_visual_context"`
	MaxKeyframes         int     `toml:"max_keyframes"`
	Workers              int     `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vidalign.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and run history locations
//   - Decoder: ffmpeg/ffprobe binaries and decode sizing
//   - Keyframes: standalone extraction defaults
//   - Scenes: scene boundary detection
//   - Alignment: tolerance and keyframe budget for alignment runs
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Decoder   Decoder   `toml:"decoder"`
	Keyframes Keyframes `toml:"keyframes"`
	Scenes    Scenes    `toml:"scenes"`
	Alignment Alignment `toml:"alignment"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vidalign/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vidalign.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory and the parent of the run history
// database. The output directory is created lazily when frames are saved.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	if strings.TrimSpace(c.Paths.StorePath) != "" {
		dir := filepath.Dir(c.Paths.StorePath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for decoding.
func (c *Config) FFmpegBinary() string {
	if bin := strings.TrimSpace(c.Decoder.FFmpegBinary); bin != "" {
		return bin
	}
	return defaultFFmpegBinary
}

// FFprobeBinary returns the ffprobe executable used for stream inspection.
func (c *Config) FFprobeBinary() string {
	if bin := strings.TrimSpace(c.Decoder.FFprobeBinary); bin != "" {
		return bin
	}
	return defaultFFprobeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
