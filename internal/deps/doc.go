// Package deps reports whether the external binaries used for decoding are
// installed.
package deps
