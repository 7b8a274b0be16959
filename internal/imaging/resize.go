package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale shrinks img to maxWidth preserving aspect ratio. Images already
// within bounds, or a non-positive maxWidth, return img unchanged.
func Downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Clone deep-copies img into a new RGBA (or Gray for grayscale input) buffer.
func Clone(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if _, ok := img.(*image.Gray); ok {
		out := image.NewGray(b)
		draw.Draw(out, b, img, b.Min, draw.Src)
		return out
	}
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}
