package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// HueBuckets is the number of hue histogram bins.
const HueBuckets = 18

// ErrSizeMismatch reports frames of differing dimensions.
var ErrSizeMismatch = errors.New("frame size mismatch")

// Gray converts img to 8-bit luma using BT.601 weights.
func Gray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			src := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride+(b.Min.X-rgba.Rect.Min.X)*4:]
			dst := out.Pix[y*out.Stride:]
			for x := 0; x < b.Dx(); x++ {
				dst[x] = luma(src[x*4], src[x*4+1], src[x*4+2])
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out.Pix[(y-b.Min.Y)*out.Stride+(x-b.Min.X)] = luma(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return out
}

func luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// MeanAbsDiff returns the mean absolute per-pixel difference of two
// equally sized grayscale frames, on a 0-255 scale.
func MeanAbsDiff(a, b *image.Gray) (float64, error) {
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return 0, fmt.Errorf("%v vs %v: %w", a.Rect.Size(), b.Rect.Size(), ErrSizeMismatch)
	}
	w, h := a.Rect.Dx(), a.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, nil
	}
	var sum uint64
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		for x := range ra {
			d := int(ra[x]) - int(rb[x])
			if d < 0 {
				d = -d
			}
			sum += uint64(d)
		}
	}
	return float64(sum) / float64(w*h), nil
}

// Brightness returns the mean luma of img on a 0-255 scale.
func Brightness(img image.Image) float64 {
	return MeanGray(Gray(img))
}

// MeanGray averages the pixels of a grayscale frame or mask.
func MeanGray(g *image.Gray) float64 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}
	var sum uint64
	for y := 0; y < h; y++ {
		for _, v := range g.Pix[y*g.Stride : y*g.Stride+w] {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(w*h)
}

// ColorStats summarises a frame for scene classification.
type ColorStats struct {
	Brightness float64
	// Saturation is the mean HSV saturation on a 0-255 scale.
	Saturation float64
	// HueHistogram bins hue over [0, 180) and sums to 1 for non-empty frames.
	HueHistogram [HueBuckets]float64
}

// Analyze computes brightness, saturation, and a hue histogram in one pass.
func Analyze(img image.Image) ColorStats {
	var stats ColorStats
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return stats
	}
	var lumaSum, satSum float64
	var counts [HueBuckets]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			lumaSum += float64(luma(c.R, c.G, c.B))
			h, s := hueSat(c.R, c.G, c.B)
			satSum += s
			bucket := int(h) * HueBuckets / 180
			if bucket >= HueBuckets {
				bucket = HueBuckets - 1
			}
			counts[bucket]++
		}
	}
	stats.Brightness = lumaSum / float64(n)
	stats.Saturation = satSum / float64(n)
	for i, c := range counts {
		stats.HueHistogram[i] = float64(c) / float64(n)
	}
	return stats
}

// hueSat returns hue in [0, 180) and saturation in [0, 255], the 8-bit HSV
// convention used by common vision toolkits.
func hueSat(r, g, b uint8) (float64, float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	maxV := max(rf, gf, bf)
	minV := min(rf, gf, bf)
	delta := maxV - minV
	if maxV == 0 {
		return 0, 0
	}
	sat := 255 * delta / maxV
	if delta == 0 {
		return 0, sat
	}
	var hue float64
	switch maxV {
	case rf:
		hue = 60 * (gf - bf) / delta
	case gf:
		hue = 120 + 60*(bf-rf)/delta
	default:
		hue = 240 + 60*(rf-gf)/delta
	}
	if hue < 0 {
		hue += 360
	}
	hue /= 2
	if hue >= 180 {
		hue -= 180
	}
	return hue, sat
}
