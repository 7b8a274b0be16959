package testsupport

import (
	"testing"

	"vidalign/internal/alignstore"
	"vidalign/internal/config"
)

// MustOpenStore opens the run history for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *alignstore.Store {
	t.Helper()

	store, err := alignstore.Open(cfg)
	if err != nil {
		t.Fatalf("alignstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
