// Package preflight provides readiness checks for the filesystem paths and
// decoder binaries vidalign depends on. The doctor command renders them;
// align and batch run RunAll before decoding so a bad output directory fails
// fast instead of after a long decode.
package preflight
