package services_test

import (
	"context"
	"testing"

	"vidalign/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithVideo(ctx, "/media/clip.mp4")
	ctx = services.WithStage(ctx, "scenes")
	ctx = services.WithRequestID(ctx, "req-123")

	if path, ok := services.VideoFromContext(ctx); !ok || path != "/media/clip.mp4" {
		t.Fatalf("unexpected video: %v %v", path, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "scenes" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	ctx = services.WithVideo(ctx, "")
	if _, ok := services.VideoFromContext(ctx); ok {
		t.Fatal("expected no video value")
	}
}
