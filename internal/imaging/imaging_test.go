package imaging_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"vidalign/internal/imaging"
)

func fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestGrayUsesLumaWeights(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"red", color.RGBA{255, 0, 0, 255}, 76},
		{"green", color.RGBA{0, 255, 0, 255}, 150},
		{"blue", color.RGBA{0, 0, 255, 255}, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := imaging.Gray(fill(2, 2, tt.c))
			if g.Pix[0] != tt.want {
				t.Fatalf("luma = %d, want %d", g.Pix[0], tt.want)
			}
		})
	}
}

func TestGrayHandlesSubImage(t *testing.T) {
	img := fill(4, 4, color.RGBA{0, 0, 0, 255})
	img.Set(3, 3, color.RGBA{255, 255, 255, 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))
	g := imaging.Gray(sub)
	if g.Rect.Dx() != 2 || g.Pix[3] != 255 || g.Pix[0] != 0 {
		t.Fatalf("unexpected sub-image luma: %v", g.Pix)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	a := imaging.Gray(fill(4, 4, color.Gray{Y: 10}))
	b := imaging.Gray(fill(4, 4, color.Gray{Y: 60}))
	got, err := imaging.MeanAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MeanAbsDiff: %v", err)
	}
	if got != 50 {
		t.Fatalf("MeanAbsDiff = %v, want 50", got)
	}
	if same, _ := imaging.MeanAbsDiff(a, a); same != 0 {
		t.Fatalf("identical frames diff = %v", same)
	}
	c := imaging.Gray(fill(2, 2, color.Gray{}))
	if _, err := imaging.MeanAbsDiff(a, c); !errors.Is(err, imaging.ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestAnalyzeColorStats(t *testing.T) {
	tests := []struct {
		name       string
		c          color.RGBA
		brightness float64
		saturation float64
		hueBucket  int
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0, 0},
		{"pure red", color.RGBA{255, 0, 0, 255}, 76, 255, 0},
		{"pure green", color.RGBA{0, 255, 0, 255}, 150, 255, 6},
		{"pure blue", color.RGBA{0, 0, 255, 255}, 29, 255, 12},
		{"grey", color.RGBA{128, 128, 128, 255}, 128, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := imaging.Analyze(fill(3, 3, tt.c))
			if math.Abs(stats.Brightness-tt.brightness) > 0.5 {
				t.Errorf("brightness = %v, want %v", stats.Brightness, tt.brightness)
			}
			if math.Abs(stats.Saturation-tt.saturation) > 0.5 {
				t.Errorf("saturation = %v, want %v", stats.Saturation, tt.saturation)
			}
			if stats.HueHistogram[tt.hueBucket] != 1 {
				t.Errorf("hue histogram = %v, want all mass in bucket %d", stats.HueHistogram, tt.hueBucket)
			}
		})
	}
}

func TestHueHistogramNormalized(t *testing.T) {
	img := fill(2, 1, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})
	stats := imaging.Analyze(img)
	var sum float64
	for _, v := range stats.HueHistogram {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("histogram sum = %v, want 1", sum)
	}
	if stats.HueHistogram[0] != 0.5 || stats.HueHistogram[12] != 0.5 {
		t.Fatalf("histogram = %v", stats.HueHistogram)
	}
}

func TestBrightnessEmptyImage(t *testing.T) {
	if got := imaging.Brightness(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Fatalf("Brightness(empty) = %v", got)
	}
}

func TestDownscale(t *testing.T) {
	img := fill(640, 360, color.RGBA{200, 100, 50, 255})
	small := imaging.Downscale(img, 320)
	if b := small.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Fatalf("downscaled bounds = %v", b)
	}
	if got := imaging.Downscale(img, 0); got != image.Image(img) {
		t.Fatal("non-positive width should return input")
	}
	if got := imaging.Downscale(img, 1000); got != image.Image(img) {
		t.Fatal("narrow input should be returned unchanged")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img := fill(2, 2, color.RGBA{10, 20, 30, 255})
	clone := imaging.Clone(img).(*image.RGBA)
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	if clone.RGBAAt(0, 0).R != 10 {
		t.Fatal("clone shares pixel data with source")
	}
	if imaging.Clone(nil) != nil {
		t.Fatal("Clone(nil) should be nil")
	}
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	if _, ok := imaging.Clone(gray).(*image.Gray); !ok {
		t.Fatal("gray clone should stay gray")
	}
}

func TestEncodeFormats(t *testing.T) {
	img := fill(4, 4, color.RGBA{1, 2, 3, 255})
	for _, format := range imaging.Formats {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, format); err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("Encode(%s) wrote nothing", format)
		}
	}
	if err := imaging.Encode(&bytes.Buffer{}, img, "tiff"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
