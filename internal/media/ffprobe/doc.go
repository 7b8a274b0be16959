// Package ffprobe wraps the ffprobe CLI and exposes the video metadata the
// decoder needs: frame rate, frame count, duration, and dimensions.
package ffprobe
