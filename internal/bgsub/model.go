package bgsub

import (
	"fmt"
	"image"

	"vidalign/internal/imaging"
)

const (
	DefaultHistory      = 500
	DefaultVarThreshold = 16

	varInit = 15
	varMin  = 4
	varMax  = 75
)

// Options tunes the background model. Shadow detection is not modelled.
type Options struct {
	// History bounds the effective window of the running estimate, in frames.
	History int
	// VarThreshold is the squared Mahalanobis distance beyond which a pixel is foreground.
	VarThreshold float64
}

// Model is a per-pixel adaptive Gaussian estimate of the static scene.
// Not safe for concurrent use.
type Model struct {
	opts     Options
	width    int
	height   int
	mean     []float32
	variance []float32
	frames   int
}

func New(opts Options) *Model {
	if opts.History <= 0 {
		opts.History = DefaultHistory
	}
	if opts.VarThreshold <= 0 {
		opts.VarThreshold = DefaultVarThreshold
	}
	return &Model{opts: opts}
}

// Frames reports how many frames have been applied.
func (m *Model) Frames() int { return m.frames }

// Apply updates the model with frame and returns its foreground mask (0 or
// 255 per pixel). The first frame seeds the model and yields an empty mask.
func (m *Model) Apply(frame *image.Gray) (*image.Gray, error) {
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	mask := image.NewGray(image.Rect(0, 0, w, h))
	if m.frames == 0 {
		m.seed(frame)
		return mask, nil
	}
	if w != m.width || h != m.height {
		return nil, fmt.Errorf("model %dx%d, frame %dx%d: %w", m.width, m.height, w, h, imaging.ErrSizeMismatch)
	}

	m.frames++
	alpha := float32(1) / float32(min(2*m.frames, m.opts.History))
	threshold := float32(m.opts.VarThreshold)

	for y := 0; y < h; y++ {
		row := frame.Pix[y*frame.Stride : y*frame.Stride+w]
		for x, px := range row {
			i := y*w + x
			diff := float32(px) - m.mean[i]
			d2 := diff * diff
			if d2 > threshold*m.variance[i] {
				mask.Pix[y*mask.Stride+x] = 255
			}
			m.mean[i] += alpha * diff
			v := m.variance[i] + alpha*(d2-m.variance[i])
			m.variance[i] = min(max(v, varMin), varMax)
		}
	}
	return mask, nil
}

func (m *Model) seed(frame *image.Gray) {
	m.width, m.height = frame.Rect.Dx(), frame.Rect.Dy()
	n := m.width * m.height
	m.mean = make([]float32, n)
	m.variance = make([]float32, n)
	for y := 0; y < m.height; y++ {
		row := frame.Pix[y*frame.Stride : y*frame.Stride+m.width]
		for x, px := range row {
			m.mean[y*m.width+x] = float32(px)
			m.variance[y*m.width+x] = varInit
		}
	}
	m.frames = 1
}

// MotionScore is the foreground fraction of mask in [0, 1].
func MotionScore(mask *image.Gray) float64 {
	return imaging.MeanGray(mask) / 255
}
