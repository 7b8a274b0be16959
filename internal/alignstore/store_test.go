package alignstore_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vidalign/internal/alignment"
	"vidalign/internal/alignstore"
	"vidalign/internal/keyframe"
	"vidalign/internal/scene"
	"vidalign/internal/services"
	"vidalign/internal/testsupport"
)

func sampleAlignments() []alignment.ContentAlignment {
	return []alignment.ContentAlignment{
		{
			Text: "hello", Start: 0, End: 1,
			Keyframe:      &keyframe.Keyframe{FrameIndex: 0, Timestamp: 0, Method: keyframe.MethodUniform},
			Scene:         &scene.Scene{Start: 0, End: 4, SceneType: scene.TypeDay, Location: scene.LocationOutdoor},
			Confidence:    alignment.ConfidenceHigh,
			VisualContext: alignment.ContextBright,
			Warnings:      []string{},
			Metadata:      alignment.Metadata{SceneIndex: 0, Brightness: 210},
		},
		{
			Text: "lost", Start: 9, End: 10,
			Confidence: alignment.ConfidenceLow,
			Warnings:   []string{"no keyframe or scene matched this segment"},
			Metadata:   alignment.Metadata{SceneIndex: -1},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	run := alignstore.NewRun("/videos/clip.mp4", "/videos/clip.srt", sampleAlignments())
	if err := store.SaveRun(ctx, &run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got == nil {
		t.Fatal("expected run")
	}
	if got.VideoPath != run.VideoPath || got.SubtitlePath != run.SubtitlePath {
		t.Fatalf("paths = %q/%q", got.VideoPath, got.SubtitlePath)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if got.Report != run.Report {
		t.Fatalf("report = %+v, want %+v", got.Report, run.Report)
	}
	if len(got.Alignments) != 2 {
		t.Fatalf("alignments = %d", len(got.Alignments))
	}
	first := got.Alignments[0]
	if first.Scene == nil || first.Scene.SceneType != scene.TypeDay || first.Keyframe == nil {
		t.Fatalf("first alignment = %+v", first)
	}
	if got.Alignments[1].Metadata.SceneIndex != -1 || len(got.Alignments[1].Warnings) != 1 {
		t.Fatalf("second alignment = %+v", got.Alignments[1])
	}
}

func TestGetRunMissing(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	got, err := store.GetRun(context.Background(), uuid.New())
	if err != nil || got != nil {
		t.Fatalf("GetRun = %v, %v; want nil, nil", got, err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		run := alignstore.Run{
			VideoPath: filepath.Join("/videos", string(rune('a'+i))+".mp4"),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Report:    alignment.Report{Total: i + 1},
		}
		if err := store.SaveRun(ctx, &run); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
		if run.ID == uuid.Nil {
			t.Fatal("SaveRun did not assign an id")
		}
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("order = %v, %v", runs[0].ID, runs[1].ID)
	}
	if runs[0].Alignments != nil {
		t.Fatal("ListRuns should not load alignments")
	}

	all, err := store.ListRuns(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListRuns(0) = %d, %v", len(all), err)
	}
	if n, err := store.Count(ctx); err != nil || n != 3 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestListRunsOrdersWithinOneSecond(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	offsets := []time.Duration{100 * time.Millisecond, 120 * time.Millisecond, 0}
	ids := make(map[time.Duration]uuid.UUID)
	for _, offset := range offsets {
		run := alignstore.Run{VideoPath: "/videos/clip.mp4", CreatedAt: base.Add(offset)}
		if err := store.SaveRun(ctx, &run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
		ids[offset] = run.ID
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	want := []uuid.UUID{ids[120*time.Millisecond], ids[100*time.Millisecond], ids[0]}
	for i, id := range want {
		if runs[i].ID != id {
			t.Fatalf("run %d = %s (created %v), want %s", i, runs[i].ID, runs[i].CreatedAt, id)
		}
	}
}

func TestSaveRunRejectsNil(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if err := store.SaveRun(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil run")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := alignstore.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run := alignstore.NewRun("/videos/clip.mp4", "", nil)
	if err := store.SaveRun(context.Background(), &run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	got, err := reopened.GetRun(context.Background(), run.ID)
	if err != nil || got == nil {
		t.Fatalf("GetRun after reopen = %v, %v", got, err)
	}
	if got.SubtitlePath != "" || len(got.Alignments) != 0 {
		t.Fatalf("unexpected run %+v", got)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	store.Close()

	db, err := sql.Open("sqlite", cfg.Paths.StorePath)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	db.Close()

	if _, err := alignstore.Open(cfg); !errors.Is(err, alignstore.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRequiresStorePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.StorePath = ""
	if _, err := alignstore.Open(cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
