// Package config loads, normalizes, and validates vidalign configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VIDALIGN_FFMPEG. The Config type centralizes the decoder, extraction, scene,
// and alignment knobs so the CLI and library callers resolve them in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical enum values, and clear validation errors.
package config
