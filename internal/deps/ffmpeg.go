package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveSidecar locates the companion tool name for primary, preferring a
// binary in the same directory as the resolved primary and falling back to
// PATH. ffmpeg and ffprobe builds are usually unpacked together, so a custom
// ffmpeg should be paired with its own ffprobe.
func ResolveSidecar(primary, name, description string) Status {
	result := Status{
		Name:        name,
		Description: description,
	}

	primaryBinary := strings.TrimSpace(primary)
	if primaryBinary != "" {
		if resolved, err := exec.LookPath(primaryBinary); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), executableName(name))
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				result.Command = candidate
				result.Available = true
				return result
			}
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		result.Command = path
		result.Available = true
		return result
	}

	result.Command = name
	result.Available = false
	result.Detail = fmt.Sprintf("binary %q not found", name)
	return result
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
