package testsupport

import (
	"image"
	"image/color"

	"vidalign/internal/video"
)

// FrameSize is the edge length of synthetic frames.
const FrameSize = 8

// Solid returns a FrameSize square frame filled with c.
func Solid(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	for y := 0; y < FrameSize; y++ {
		for x := 0; x < FrameSize; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// GrayFrames builds one solid grey frame per level.
func GrayFrames(levels ...uint8) []image.Image {
	frames := make([]image.Image, len(levels))
	for i, level := range levels {
		frames[i] = Solid(color.RGBA{R: level, G: level, B: level, A: 255})
	}
	return frames
}

// ConstantFrames builds n identical grey frames.
func ConstantFrames(n int, level uint8) []image.Image {
	levels := make([]uint8, n)
	for i := range levels {
		levels[i] = level
	}
	return GrayFrames(levels...)
}

// Shots concatenates runs of constant frames, one run per level, each
// length frames long. Every run boundary is a hard cut.
func Shots(length int, levels ...uint8) []image.Image {
	var frames []image.Image
	for _, level := range levels {
		frames = append(frames, ConstantFrames(length, level)...)
	}
	return frames
}

// NewOpener registers a single clip under path.
func NewOpener(path string, fps float64, frames []image.Image) *video.MemoryOpener {
	opener := video.NewMemoryOpener()
	opener.Add(path, video.MemoryVideo{FPS: fps, Frames: frames})
	return opener
}
