package cleanup

import (
	"fmt"
	"strings"
)

const (
	// DefaultPreviewLimit is the number of candidates listed before the overflow line.
	DefaultPreviewLimit = 20

	unnamedSeries = "<Unnamed Series>"
	unknownGame   = "Unknown Game"
)

// BuildPreview renders up to limit candidates, one per line, followed by an
// overflow line when candidates were omitted. A non-positive limit uses
// DefaultPreviewLimit.
func BuildPreview(candidates []RemovalCandidate, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	shown := min(limit, len(candidates))

	lines := make([]string, 0, shown+1)
	for _, c := range candidates[:shown] {
		lines = append(lines, fmt.Sprintf("• %s (Game: %s)", seriesLabel(c), gameLabel(c)))
	}
	if omitted := len(candidates) - shown; omitted > 0 {
		lines = append(lines, fmt.Sprintf("…and %d more series", omitted))
	}
	return strings.Join(lines, "\n")
}

func seriesLabel(c RemovalCandidate) string {
	if c.Series == nil || strings.TrimSpace(c.Series.Name) == "" {
		return unnamedSeries
	}
	return c.Series.Name
}

func gameLabel(c RemovalCandidate) string {
	if c.Game == nil || strings.TrimSpace(c.Game.Name) == "" {
		return unknownGame
	}
	return c.Game.Name
}
