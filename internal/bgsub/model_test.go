package bgsub_test

import (
	"errors"
	"image"
	"testing"

	"vidalign/internal/bgsub"
	"vidalign/internal/imaging"
)

func grayFrame(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func TestFirstFrameSeedsModel(t *testing.T) {
	m := bgsub.New(bgsub.Options{})
	mask, err := m.Apply(grayFrame(8, 8, 200))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if score := bgsub.MotionScore(mask); score != 0 {
		t.Fatalf("first frame score = %v, want 0", score)
	}
	if m.Frames() != 1 {
		t.Fatalf("Frames = %d, want 1", m.Frames())
	}
}

func TestStaticSceneHasNoMotion(t *testing.T) {
	m := bgsub.New(bgsub.Options{})
	for i := 0; i < 20; i++ {
		mask, err := m.Apply(grayFrame(8, 8, 100))
		if err != nil {
			t.Fatalf("Apply %d: %v", i, err)
		}
		if score := bgsub.MotionScore(mask); score != 0 {
			t.Fatalf("frame %d score = %v, want 0", i, score)
		}
	}
}

func TestCutProducesFullMotion(t *testing.T) {
	m := bgsub.New(bgsub.Options{})
	for i := 0; i < 10; i++ {
		if _, err := m.Apply(grayFrame(8, 8, 20)); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	mask, err := m.Apply(grayFrame(8, 8, 230))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if score := bgsub.MotionScore(mask); score != 1 {
		t.Fatalf("cut score = %v, want 1", score)
	}
}

func TestPartialMotion(t *testing.T) {
	m := bgsub.New(bgsub.Options{History: 100})
	for i := 0; i < 5; i++ {
		if _, err := m.Apply(grayFrame(4, 4, 50)); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	frame := grayFrame(4, 4, 50)
	for x := 0; x < 4; x++ {
		frame.Pix[x] = 250
	}
	mask, err := m.Apply(frame)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if score := bgsub.MotionScore(mask); score != 0.25 {
		t.Fatalf("score = %v, want 0.25", score)
	}
}

func TestModelAdaptsToNewBackground(t *testing.T) {
	m := bgsub.New(bgsub.Options{History: 10})
	m.Apply(grayFrame(4, 4, 20))
	var last float64
	for i := 0; i < 60; i++ {
		mask, _ := m.Apply(grayFrame(4, 4, 220))
		last = bgsub.MotionScore(mask)
	}
	if last != 0 {
		t.Fatalf("model did not absorb the new background, score = %v", last)
	}
}

func TestSizeMismatch(t *testing.T) {
	m := bgsub.New(bgsub.Options{})
	m.Apply(grayFrame(4, 4, 0))
	if _, err := m.Apply(grayFrame(2, 2, 0)); !errors.Is(err, imaging.ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}
