package library

import (
	"context"
	"fmt"
)

// SeriesUsage pairs a series with the number of games referencing it.
type SeriesUsage struct {
	Series *Series
	Games  int
}

// SeriesUsage returns every series with its reference count, ordered by id.
func (s *Store) SeriesUsage(ctx context.Context) ([]SeriesUsage, error) {
	series, err := s.ListSeries(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	counts := ReferenceCounts(games)
	usage := make([]SeriesUsage, 0, len(series))
	for _, item := range series {
		usage = append(usage, SeriesUsage{Series: item, Games: counts[item.ID]})
	}
	return usage, nil
}

// ReferenceCounts maps each referenced series id to the number of games
// referencing it. A game counts at most once per series.
func ReferenceCounts(games []*Game) map[string]int {
	counts := make(map[string]int)
	for _, game := range games {
		if game == nil {
			continue
		}
		seen := make(map[string]struct{}, len(game.SeriesIDs))
		for _, id := range game.SeriesIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			counts[id]++
		}
	}
	return counts
}

// Stats aggregates library counts for diagnostic output.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	series, err := s.ListSeries(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}
	games, err := s.ListGames(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}

	stats := Stats{Games: len(games), Series: len(series)}
	for _, game := range games {
		if len(game.SeriesIDs) > 0 {
			stats.GamesWithSeries++
		}
	}
	counts := ReferenceCounts(games)
	known := make(map[string]struct{}, len(series))
	for _, item := range series {
		known[item.ID] = struct{}{}
		switch counts[item.ID] {
		case 0:
			stats.UnreferencedSeries++
		case 1:
			stats.SingleGameSeries++
		}
	}
	for id, count := range counts {
		if _, ok := known[id]; !ok {
			stats.DanglingRefs += count
		}
	}
	return stats, nil
}
