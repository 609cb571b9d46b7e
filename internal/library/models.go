package library

import "time"

// Game is a library entry that may reference zero or more series.
type Game struct {
	ID        string
	Name      string
	SeriesIDs []string
	UpdatedAt time.Time
}

// HasSeries reports whether the game references the series id.
func (g *Game) HasSeries(seriesID string) bool {
	if g == nil {
		return false
	}
	for _, id := range g.SeriesIDs {
		if id == seriesID {
			return true
		}
	}
	return false
}

// DropSeries removes every occurrence of seriesID from the association set and
// reports whether anything changed.
func (g *Game) DropSeries(seriesID string) bool {
	if g == nil || len(g.SeriesIDs) == 0 {
		return false
	}
	kept := g.SeriesIDs[:0]
	removed := false
	for _, id := range g.SeriesIDs {
		if id == seriesID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	g.SeriesIDs = kept
	return removed
}

// Series is a named grouping that games can reference.
type Series struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

// Stats summarizes library contents.
type Stats struct {
	Games              int
	Series             int
	GamesWithSeries    int
	UnreferencedSeries int
	SingleGameSeries   int
	DanglingRefs       int
}
