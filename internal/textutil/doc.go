// Package textutil provides small text helpers: filesystem-safe names for
// exported frames, display truncation, and a generic conditional.
package textutil
