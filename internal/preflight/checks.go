package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"vidalign/internal/config"
	"vidalign/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatableDirectory passes when path is an accessible directory or can
// be created under its nearest existing ancestor.
func CheckCreatableDirectory(name, path string) Result {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return CheckDirectoryAccess(name, path)
	}

	ancestor := filepath.Dir(path)
	for {
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}
	check := CheckDirectoryAccess(name, ancestor)
	if !check.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s)", path, ancestor)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first use)", path)}
}

// CheckSystemDeps evaluates the decoder binaries for cfg. A default ffprobe
// is resolved next to the configured ffmpeg before falling back to PATH.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for frame decoding",
		},
	}
	statuses := deps.CheckBinaries(requirements)

	ffprobe := cfg.FFprobeBinary()
	if strings.TrimSpace(cfg.Decoder.FFprobeBinary) == "" || ffprobe == "ffprobe" {
		statuses = append(statuses, deps.ResolveSidecar(cfg.FFmpegBinary(), "ffprobe", "Required for stream inspection"))
	} else {
		statuses = append(statuses, deps.CheckBinaries([]deps.Requirement{{
			Name:        "ffprobe",
			Command:     ffprobe,
			Description: "Required for stream inspection",
		}})...)
	}
	return statuses
}
