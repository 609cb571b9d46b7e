package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Export is the JSON document accepted by Import.
type Export struct {
	Series []ExportSeries `json:"series"`
	Games  []ExportGame   `json:"games"`
}

// ExportSeries is one series record in an Export.
type ExportSeries struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExportGame is one game record in an Export.
type ExportGame struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	SeriesIDs []string `json:"series_ids"`
}

// ImportSummary reports how many records an import wrote.
type ImportSummary struct {
	Games  int
	Series int
}

// DecodeExport parses a library export document.
func DecodeExport(r io.Reader) (*Export, error) {
	var doc Export
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode library export: %w", err)
	}
	return &doc, nil
}

// Import upserts every record of doc in one transaction. Records without an
// id receive a random UUID.
func (s *Store) Import(ctx context.Context, doc *Export) (ImportSummary, error) {
	if doc == nil {
		return ImportSummary{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var summary ImportSummary
	for _, entry := range doc.Series {
		series := &Series{ID: normalizeID(entry.ID), Name: strings.TrimSpace(entry.Name)}
		if err := upsertSeries(ctx, tx, series); err != nil {
			return ImportSummary{}, fmt.Errorf("import series %q: %w", entry.Name, err)
		}
		summary.Series++
	}
	for _, entry := range doc.Games {
		game := &Game{
			ID:        normalizeID(entry.ID),
			Name:      strings.TrimSpace(entry.Name),
			SeriesIDs: entry.SeriesIDs,
		}
		if err := upsertGame(ctx, tx, game); err != nil {
			return ImportSummary{}, fmt.Errorf("import game %q: %w", entry.Name, err)
		}
		summary.Games++
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("commit import: %w", err)
	}
	return summary, nil
}

func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.NewString()
	}
	return id
}
