package library_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"seriesclean/internal/library"
	"seriesclean/internal/testsupport"
)

func TestOpenCreatesSchemaAndRoundTrips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.SaveSeries(ctx, &library.Series{ID: "s1", Name: "Alpha"}); err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}
	game := &library.Game{ID: "g1", Name: "Game One", SeriesIDs: []string{"s1", "s1", " ", "s2"}}
	if err := store.SaveGame(ctx, game); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	fetched, err := store.Game(ctx, "g1")
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if fetched == nil || fetched.Name != "Game One" {
		t.Fatalf("unexpected game: %#v", fetched)
	}
	if !reflect.DeepEqual(fetched.SeriesIDs, []string{"s1", "s2"}) {
		t.Fatalf("expected deduplicated series ids, got %v", fetched.SeriesIDs)
	}
	if fetched.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}

	series, err := store.Series(ctx, "s1")
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if series == nil || series.Name != "Alpha" {
		t.Fatalf("unexpected series: %#v", series)
	}

	missing, err := store.Game(ctx, "nope")
	if err != nil {
		t.Fatalf("Game(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing game, got %#v", missing)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	testsupport.SeedLibrary(t, store, testsupport.Fixture{Series: map[string]string{"s1": "Alpha"}})
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	series, err := reopened.ListSeries(context.Background())
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(series) != 1 || series[0].ID != "s1" {
		t.Fatalf("unexpected series after reopen: %#v", series)
	}
}

func TestListOrderedByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedLibrary(t, store, testsupport.Fixture{
		Series: map[string]string{"s3": "C", "s1": "A", "s2": "B"},
		Games:  map[string][]string{"g2": {"s1"}, "g1": nil},
	})

	ctx := context.Background()
	series, err := store.ListSeries(ctx)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	var ids []string
	for _, s := range series {
		ids = append(ids, s.ID)
	}
	if strings.Join(ids, ",") != "s1,s2,s3" {
		t.Fatalf("unexpected series order: %v", ids)
	}

	games, err := store.ListGames(ctx)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 2 || games[0].ID != "g1" || len(games[0].SeriesIDs) != 0 {
		t.Fatalf("unexpected games: %#v", games)
	}
}

func TestUpdateMissingGameReturnsNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.UpdateGame(context.Background(), &library.Game{ID: "ghost"})
	if !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveSeriesReportsExistence(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedLibrary(t, store, testsupport.Fixture{Series: map[string]string{"s1": "Alpha"}})
	ctx := context.Background()

	removed, err := store.RemoveSeries(ctx, "s1")
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}
	removed, err = store.RemoveSeries(ctx, "s1")
	if err != nil || removed {
		t.Fatalf("expected second removal to report false, got %v, %v", removed, err)
	}
}

func TestStatsAndSeriesUsage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedLibrary(t, store, testsupport.Fixture{
		Series: map[string]string{"s1": "Alpha", "s2": "Beta", "s3": "Gamma"},
		Games: map[string][]string{
			"A": {"s1"},
			"B": {"s2"},
			"C": {"s2", "ghost"},
			"D": nil,
		},
	})
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := library.Stats{Games: 4, Series: 3, GamesWithSeries: 3, UnreferencedSeries: 1, SingleGameSeries: 1, DanglingRefs: 1}
	if stats != want {
		t.Fatalf("unexpected stats: got %+v want %+v", stats, want)
	}

	usage, err := store.SeriesUsage(ctx)
	if err != nil {
		t.Fatalf("SeriesUsage: %v", err)
	}
	counts := map[string]int{}
	for _, u := range usage {
		counts[u.Series.ID] = u.Games
	}
	if counts["s1"] != 1 || counts["s2"] != 2 || counts["s3"] != 0 {
		t.Fatalf("unexpected usage counts: %v", counts)
	}
}

func TestGameDropSeries(t *testing.T) {
	game := &library.Game{ID: "g", SeriesIDs: []string{"a", "b", "a"}}
	if !game.HasSeries("a") {
		t.Fatal("expected HasSeries true")
	}
	if !game.DropSeries("a") {
		t.Fatal("expected DropSeries to report change")
	}
	if !reflect.DeepEqual(game.SeriesIDs, []string{"b"}) {
		t.Fatalf("unexpected series after drop: %v", game.SeriesIDs)
	}
	if game.DropSeries("a") {
		t.Fatal("expected no change on second drop")
	}
}
