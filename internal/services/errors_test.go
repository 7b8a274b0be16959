package services_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"vidalign/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "keyframe", "decode", "ffmpeg exited", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"keyframe", "decode", "ffmpeg exited"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestMediaProcessingErrorNamesPath(t *testing.T) {
	err := error(services.NewMediaProcessingError("/videos/missing.mp4", "open", fs.ErrNotExist))
	if !errors.Is(err, services.ErrMediaProcessing) {
		t.Fatalf("expected media processing marker, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "/videos/missing.mp4") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
	var mpe *services.MediaProcessingError
	if !errors.As(err, &mpe) || mpe.Path != "/videos/missing.mp4" {
		t.Fatalf("expected errors.As to expose path, got %+v", mpe)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"media", services.NewMediaProcessingError("a.mp4", "", nil), "media"},
		{"configuration", services.Wrap(services.ErrConfiguration, "keyframe", "extract", "unknown method", nil), "configuration"},
		{"validation", services.Wrap(services.ErrValidation, "", "", "bad", nil), "validation"},
		{"external", services.Wrap(services.ErrExternalTool, "", "", "exit 1", nil), "external_tool"},
		{"other", errors.New("plain"), "transient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ErrorKind(tt.err); got != tt.want {
				t.Fatalf("ErrorKind = %q, want %q", got, tt.want)
			}
		})
	}
}
