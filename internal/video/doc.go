// Package video defines the frame-access capability consumed by the keyframe
// and scene analyzers, plus two implementations: an ffmpeg-backed decoder that
// streams raw RGB frames from a subprocess, and an in-memory source for tests
// and synthetic clips.
//
// A Source holds one read cursor. Callers own the handle they open and must
// Close it on every exit path.
package video
