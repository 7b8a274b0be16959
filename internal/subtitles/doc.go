// Package subtitles reads SRT files into ordered, time-stamped segments.
//
// Markup tags and ASS override blocks are stripped, multi-line cues are joined
// with a single space, and text is NFC-normalized. Cues that only advertise a
// subtitle site are dropped.
package subtitles
