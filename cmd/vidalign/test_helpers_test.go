package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidalign/internal/config"
	"vidalign/internal/testsupport"
	"vidalign/internal/video"
)

const (
	testVideo = "/videos/clip.mp4"
	testSRT   = `1
00:00:00,000 --> 00:00:01,000
Lights out.

2
00:00:01,000 --> 00:00:02,000
<i>Morning already?</i>

3
00:00:02,000 --> 00:00:03,000
Back to sleep.
`
)

type cliTestEnv struct {
	cfg        *config.Config
	opener     *video.MemoryOpener
	configPath string
	srtPath    string
	logs       *bytes.Buffer
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	cfg := testsupport.NewConfig(t)

	configPath := filepath.Join(homeDir, ".config", "vidalign", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	srtPath := filepath.Join(base, "clip.srt")
	if err := os.WriteFile(srtPath, []byte(testSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}

	opener := testsupport.NewOpener(testVideo, 10, testsupport.Shots(10, 20, 220, 20))
	return &cliTestEnv{
		cfg:        cfg,
		opener:     opener,
		configPath: configPath,
		srtPath:    srtPath,
		logs:       &bytes.Buffer{},
	}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommandWith(rootOptions{opener: e.opener, logWriter: e.logs})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\noutput_dir = %q\nlog_dir = %q\nstore_path = %q\n\n[alignment]\nworkers = 2\n",
		cfg.Paths.OutputDir,
		cfg.Paths.LogDir,
		cfg.Paths.StorePath,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
