package cleanup

import (
	"sort"

	"seriesclean/internal/library"
)

// RemovalCandidate pairs a series with the only game that references it.
type RemovalCandidate struct {
	Series *library.Series
	Game   *library.Game
}

// FindSingleGameSeries returns one candidate for every series referenced by
// exactly one game, ordered by series id. Reference counts come from
// library.ReferenceCounts so the cost is linear in series plus games.
func FindSingleGameSeries(series []*library.Series, games []*library.Game) []RemovalCandidate {
	counts := library.ReferenceCounts(games)
	owner := make(map[string]*library.Game, len(counts))
	for _, game := range games {
		if game == nil {
			continue
		}
		for _, id := range game.SeriesIDs {
			if counts[id] == 1 {
				owner[id] = game
			}
		}
	}

	candidates := make([]RemovalCandidate, 0)
	for _, s := range series {
		if s == nil {
			continue
		}
		if game, ok := owner[s.ID]; ok {
			candidates = append(candidates, RemovalCandidate{Series: s, Game: game})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Series.ID < candidates[j].Series.ID
	})
	return candidates
}
