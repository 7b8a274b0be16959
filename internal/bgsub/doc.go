// Package bgsub maintains an adaptive per-pixel background estimate and scores
// how much of each new frame departs from it.
package bgsub
