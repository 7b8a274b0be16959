// Package alignstore records alignment runs in a local SQLite database.
//
// Each run keeps the video and subtitle paths, the report figures as
// columns for listing, and the full alignments as JSON for later export.
// The schema is embedded and version-checked on open; a mismatch returns
// ErrSchemaMismatch rather than migrating.
package alignstore
