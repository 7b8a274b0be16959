// Package logging assembles structured slog loggers and formatting helpers used
// across vidalign.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so extraction and alignment code can tag log
// lines with the video path, stage, and correlation ID. The package also
// provides a no-op logger for tests and for library callers that pass nil.
package logging
