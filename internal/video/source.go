package video

import (
	"context"
	"errors"
	"image"
)

// ErrSeekOutOfRange reports a seek outside [0, FrameCount).
var ErrSeekOutOfRange = errors.New("seek out of range")

// Source is a decoded video stream with a single stateful read cursor.
// Implementations are not safe for concurrent use.
type Source interface {
	Path() string
	// FrameCount is the declared number of frames, or 0 when unknown.
	FrameCount() int
	FPS() float64
	// Duration is the stream length in seconds.
	Duration() float64
	// Seek positions the cursor so the next ReadFrame returns frame index.
	Seek(index int) error
	// ReadFrame decodes the frame under the cursor and advances it. It returns
	// io.EOF once the stream is exhausted.
	ReadFrame() (image.Image, error)
	Close() error
}

// Opener acquires Source handles.
type Opener interface {
	Open(ctx context.Context, path string) (Source, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) (Source, error)

func (f OpenerFunc) Open(ctx context.Context, path string) (Source, error) {
	return f(ctx, path)
}

// Timestamp converts a frame index to seconds clamped to [0, duration].
func Timestamp(src Source, index int) float64 {
	fps := src.FPS()
	if fps <= 0 || index <= 0 {
		return 0
	}
	ts := float64(index) / fps
	if d := src.Duration(); d > 0 && ts > d {
		return d
	}
	return ts
}

// FrameAt converts seconds into the nearest preceding frame index, bounded by
// the source's frame count.
func FrameAt(src Source, seconds float64) int {
	fps := src.FPS()
	if fps <= 0 || seconds <= 0 {
		return 0
	}
	index := int(seconds * fps)
	if total := src.FrameCount(); total > 0 && index >= total {
		index = total - 1
	}
	return index
}
