package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMediaProcessing = errors.New("media processing error")
	ErrExternalTool    = errors.New("external tool error")
	ErrValidation      = errors.New("validation error")
	ErrConfiguration   = errors.New("configuration error")
	ErrNotFound        = errors.New("not found")
	ErrTransient       = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// MediaProcessingError reports a video that could not be opened or read. It
// always names the offending path.
type MediaProcessingError struct {
	Path string
	Op   string
	Err  error
}

// NewMediaProcessingError builds a MediaProcessingError for path.
func NewMediaProcessingError(path, op string, err error) *MediaProcessingError {
	return &MediaProcessingError{Path: path, Op: op, Err: err}
}

func (e *MediaProcessingError) Error() string {
	op := strings.TrimSpace(e.Op)
	if op == "" {
		op = "open"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s video %q: %s", op, e.Path, ErrMediaProcessing)
	}
	return fmt.Sprintf("%s video %q: %v", op, e.Path, e.Err)
}

func (e *MediaProcessingError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMediaProcessing) match regardless of the cause.
func (e *MediaProcessingError) Is(target error) bool {
	return target == ErrMediaProcessing
}

// ErrorKind classifies err into the taxonomy used by the CLI exit paths:
// "media", "configuration", "validation", "external_tool", or "transient".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMediaProcessing):
		return "media"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return "validation"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	default:
		return "transient"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
