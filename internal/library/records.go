package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	gameColumns   = "id, name, series_ids_json, updated_at"
	seriesColumns = "id, name, updated_at"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface{ Scan(dest ...any) error }

func scanGame(scanner rowScanner) (*Game, error) {
	var (
		id         string
		name       sql.NullString
		seriesJSON sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &name, &seriesJSON, &updatedRaw); err != nil {
		return nil, err
	}
	game := &Game{ID: id, Name: name.String}
	if seriesJSON.Valid && strings.TrimSpace(seriesJSON.String) != "" {
		if err := json.Unmarshal([]byte(seriesJSON.String), &game.SeriesIDs); err != nil {
			return nil, fmt.Errorf("decode series ids for game %s: %w", id, err)
		}
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		game.UpdatedAt = updated
	}
	return game, nil
}

func scanSeries(scanner rowScanner) (*Series, error) {
	var (
		id         string
		name       sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &name, &updatedRaw); err != nil {
		return nil, err
	}
	series := &Series{ID: id, Name: name.String}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		series.UpdatedAt = updated
	}
	return series, nil
}

func getGame(ctx context.Context, q querier, id string) (*Game, error) {
	row := q.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

func getSeries(ctx context.Context, q querier, id string) (*Series, error) {
	row := q.QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = ?`, id)
	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

func upsertGame(ctx context.Context, q querier, game *Game) error {
	if game == nil {
		return errors.New("game is nil")
	}
	if strings.TrimSpace(game.ID) == "" {
		return errors.New("game id is required")
	}
	seriesJSON, err := encodeSeriesIDs(game.SeriesIDs)
	if err != nil {
		return err
	}
	game.UpdatedAt = time.Now().UTC()
	_, err = q.ExecContext(
		ctx,
		`INSERT INTO games (id, name, series_ids_json, updated_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET name = excluded.name,
             series_ids_json = excluded.series_ids_json, updated_at = excluded.updated_at`,
		game.ID,
		nullableString(game.Name),
		seriesJSON,
		game.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func upsertSeries(ctx context.Context, q querier, series *Series) error {
	if series == nil {
		return errors.New("series is nil")
	}
	if strings.TrimSpace(series.ID) == "" {
		return errors.New("series id is required")
	}
	series.UpdatedAt = time.Now().UTC()
	_, err := q.ExecContext(
		ctx,
		`INSERT INTO series (id, name, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		series.ID,
		nullableString(series.Name),
		series.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save series: %w", err)
	}
	return nil
}

func updateGame(ctx context.Context, q querier, game *Game) error {
	if game == nil {
		return errors.New("game is nil")
	}
	seriesJSON, err := encodeSeriesIDs(game.SeriesIDs)
	if err != nil {
		return err
	}
	game.UpdatedAt = time.Now().UTC()
	res, err := q.ExecContext(
		ctx,
		`UPDATE games SET name = ?, series_ids_json = ?, updated_at = ? WHERE id = ?`,
		nullableString(game.Name),
		seriesJSON,
		game.UpdatedAt.Format(time.RFC3339Nano),
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update game %s: %w", game.ID, ErrNotFound)
	}
	return nil
}

func removeSeries(ctx context.Context, q querier, id string) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM series WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove series: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove series: %w", err)
	}
	return affected > 0, nil
}

// encodeSeriesIDs collapses duplicates and blanks while keeping first-seen order.
func encodeSeriesIDs(ids []string) (any, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(ids))
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("encode series ids: %w", err)
	}
	return string(data), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
