package cleanup_test

import (
	"fmt"
	"strings"
	"testing"

	"seriesclean/internal/cleanup"
	"seriesclean/internal/library"
)

func makeCandidates(n int) []cleanup.RemovalCandidate {
	out := make([]cleanup.RemovalCandidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, cleanup.RemovalCandidate{
			Series: &library.Series{ID: fmt.Sprintf("s%d", i), Name: fmt.Sprintf("Series %d", i)},
			Game:   &library.Game{ID: fmt.Sprintf("g%d", i), Name: fmt.Sprintf("Game %d", i)},
		})
	}
	return out
}

func TestBuildPreviewWithinLimit(t *testing.T) {
	preview := cleanup.BuildPreview(makeCandidates(3), 3)
	lines := strings.Split(preview, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), preview)
	}
	if lines[0] != "• Series 0 (Game: Game 0)" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if strings.Contains(preview, "more series") {
		t.Fatalf("unexpected overflow suffix: %q", preview)
	}
}

func TestBuildPreviewOverflow(t *testing.T) {
	preview := cleanup.BuildPreview(makeCandidates(25), 20)
	lines := strings.Split(preview, "\n")
	if len(lines) != 21 {
		t.Fatalf("expected 21 lines, got %d", len(lines))
	}
	if lines[20] != "…and 5 more series" {
		t.Fatalf("unexpected overflow line: %q", lines[20])
	}
}

func TestBuildPreviewDefaultsLimit(t *testing.T) {
	preview := cleanup.BuildPreview(makeCandidates(21), 0)
	if !strings.HasSuffix(preview, "…and 1 more series") {
		t.Fatalf("expected default limit of 20, got %q", preview)
	}
}

func TestBuildPreviewPlaceholders(t *testing.T) {
	candidates := []cleanup.RemovalCandidate{
		{Series: &library.Series{ID: "s1", Name: "  "}, Game: &library.Game{ID: "g1"}},
		{Series: &library.Series{ID: "s2", Name: "Named"}, Game: nil},
	}
	preview := cleanup.BuildPreview(candidates, 10)
	want := "• <Unnamed Series> (Game: Unknown Game)\n• Named (Game: Unknown Game)"
	if preview != want {
		t.Fatalf("got %q want %q", preview, want)
	}
}

func TestBuildPreviewEmpty(t *testing.T) {
	if got := cleanup.BuildPreview(nil, 5); got != "" {
		t.Fatalf("expected empty preview, got %q", got)
	}
}
