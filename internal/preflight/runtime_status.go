package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ToolVersion reports the version banner of an installed binary.
type ToolVersion struct {
	Detected bool
	Command  string
	Version  string
}

// ProbeVersion runs "<command> -version" and extracts the version token
// from the first line ("ffmpeg version 7.1 Copyright ...").
func ProbeVersion(ctx context.Context, command string) ToolVersion {
	command = strings.TrimSpace(command)
	if command == "" {
		return ToolVersion{}
	}
	if _, err := exec.LookPath(command); err != nil {
		return ToolVersion{Command: command}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, command, "-version").Output()
	if err != nil {
		return ToolVersion{Command: command}
	}
	return ToolVersion{
		Detected: true,
		Command:  command,
		Version:  parseVersion(string(output)),
	}
}

func parseVersion(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	fields := strings.Fields(line)
	for i, field := range fields {
		if field == "version" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return "unknown"
}

// Detail renders a display-friendly summary for status output.
func (v ToolVersion) Detail() string {
	if !v.Detected {
		return "Not detected"
	}
	return fmt.Sprintf("%s %s", v.Command, v.Version)
}
