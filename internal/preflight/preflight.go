package preflight

import (
	"path/filepath"

	"vidalign/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for cfg. Binary checks are reported
// separately by CheckSystemDeps.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckCreatableDirectory("Frame output directory", cfg.Paths.OutputDir),
		CheckCreatableDirectory("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Paths.StorePath != "" {
		results = append(results, CheckCreatableDirectory("Run history directory", filepath.Dir(cfg.Paths.StorePath)))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
