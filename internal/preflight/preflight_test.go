package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vidalign/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing", base, true},
		{"missing nested", filepath.Join(base, "a", "b", "c"), true},
		{"under a file", filepath.Join(file, "frames"), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCreatableDirectory("test", tt.path)
			if got.Passed != tt.want {
				t.Fatalf("Passed = %v, want %v (%s)", got.Passed, tt.want, got.Detail)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(base, "a")); !os.IsNotExist(err) {
		t.Fatal("check must not create directories")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if RunAll(nil) != nil {
		t.Fatal("expected nil for nil config")
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Available {
			t.Fatalf("expected %s available, got %q", s.Name, s.Detail)
		}
	}

	t.Setenv("PATH", "")
	for _, s := range CheckSystemDeps(cfg) {
		if s.Available {
			t.Fatalf("expected %s unavailable with empty PATH", s.Name)
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ffmpeg version 7.1 Copyright (c) 2000-2024\nbuilt with gcc", "7.1"},
		{"ffprobe version n6.1.1-static https://johnvansickle.com", "n6.1.1-static"},
		{"garbage", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		if got := parseVersion(tt.input); got != tt.want {
			t.Errorf("parseVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestProbeVersion(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'ffmpeg version 6.0 Copyright'\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	got := ProbeVersion(context.Background(), stub)
	if !got.Detected || got.Version != "6.0" {
		t.Fatalf("ProbeVersion = %+v", got)
	}
	if missing := ProbeVersion(context.Background(), filepath.Join(dir, "missing")); missing.Detected || missing.Detail() != "Not detected" {
		t.Fatalf("missing = %+v", missing)
	}
}
