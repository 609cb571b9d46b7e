package testsupport

import (
	"context"
	"testing"

	"seriesclean/internal/config"
	"seriesclean/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Fixture describes a small library. Series maps id to name; Games maps id to
// the referenced series ids. Game names default to their id.
type Fixture struct {
	Series    map[string]string
	Games     map[string][]string
	GameNames map[string]string
}

// SeedLibrary writes the fixture into store.
func SeedLibrary(t testing.TB, store *library.Store, fx Fixture) {
	t.Helper()

	ctx := context.Background()
	for id, name := range fx.Series {
		if err := store.SaveSeries(ctx, &library.Series{ID: id, Name: name}); err != nil {
			t.Fatalf("SaveSeries %s: %v", id, err)
		}
	}
	for id, seriesIDs := range fx.Games {
		name, ok := fx.GameNames[id]
		if !ok {
			name = id
		}
		if err := store.SaveGame(ctx, &library.Game{ID: id, Name: name, SeriesIDs: seriesIDs}); err != nil {
			t.Fatalf("SaveGame %s: %v", id, err)
		}
	}
}
