package scene

import (
	"context"
	"errors"

	"vidalign/internal/video"
)

// ErrHookDisabled is returned by optional hooks that have no backing implementation.
var ErrHookDisabled = errors.New("hook disabled")

// Classifier assigns a scene type, overriding the brightness heuristic. An
// empty result leaves the scene unchanged.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, s Scene) (string, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc struct {
	Label string
	Fn    func(ctx context.Context, s Scene) (string, error)
}

func (c ClassifierFunc) Name() string { return c.Label }

func (c ClassifierFunc) Classify(ctx context.Context, s Scene) (string, error) {
	return c.Fn(ctx, s)
}

// TextExtractor derives text for a scene from its frames or audio, such as
// on-screen text recognition or speech transcription.
type TextExtractor interface {
	Name() string
	ExtractText(ctx context.Context, src video.Source, s Scene) (string, error)
}

// DisabledExtractor is the default TextExtractor; it always reports ErrHookDisabled.
type DisabledExtractor string

func (d DisabledExtractor) Name() string { return string(d) }

func (DisabledExtractor) ExtractText(context.Context, video.Source, Scene) (string, error) {
	return "", ErrHookDisabled
}
