// Package services defines the shared error taxonomy and context helpers used by
// the extraction, scene analysis, and alignment packages.
//
// Key responsibilities:
//   - Sentinel markers plus the Wrap helper so failures can be classified as
//     fatal media errors, configuration mistakes, or transient problems.
//   - MediaProcessingError, the typed error returned when a video cannot be
//     opened or decoded; it always names the offending path.
//   - Context helpers that stamp request IDs, stage names, and the video being
//     processed for structured logging.
//
// Public operations translate low-level exec and I/O failures into these
// markers at their boundary so raw platform errors never leak to callers.
package services
