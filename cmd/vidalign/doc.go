// Package main hosts the vidalign CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once per invocation, builds the
// logger and ffmpeg-backed video opener from it, and hands them to the
// keyframe, scene and alignment packages. Tables are rendered with go-pretty;
// alignment results can also be emitted as JSON or recorded in the run
// history database.
//
// Keep this package lean: behaviour belongs in internal packages and is only
// surfaced here through flags and output formatting.
package main
