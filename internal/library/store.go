package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"seriesclean/internal/config"
)

// Store manages library persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the library database.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	return OpenPath(cfg.Library.Database)
}

// OpenPath opens the library database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("library database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: flock.New(dbPath + ".lock")}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListGames returns every game ordered by id.
func (s *Store) ListGames(ctx context.Context) ([]*Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// ListSeries returns every series ordered by id.
func (s *Store) ListSeries(ctx context.Context) ([]*Series, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+seriesColumns+` FROM series ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var series []*Series
	for rows.Next() {
		item, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		series = append(series, item)
	}
	return series, rows.Err()
}

// Game fetches a game by identifier. A missing game yields (nil, nil).
func (s *Store) Game(ctx context.Context, id string) (*Game, error) {
	return getGame(ctx, s.db, id)
}

// Series fetches a series by identifier. A missing series yields (nil, nil).
func (s *Store) Series(ctx context.Context, id string) (*Series, error) {
	return getSeries(ctx, s.db, id)
}

// SaveGame inserts or replaces a game.
func (s *Store) SaveGame(ctx context.Context, game *Game) error {
	return upsertGame(ctx, s.db, game)
}

// SaveSeries inserts or replaces a series.
func (s *Store) SaveSeries(ctx context.Context, series *Series) error {
	return upsertSeries(ctx, s.db, series)
}

// UpdateGame persists changes to an existing game.
func (s *Store) UpdateGame(ctx context.Context, game *Game) error {
	return updateGame(ctx, s.db, game)
}

// RemoveGame deletes a game and reports whether it existed.
func (s *Store) RemoveGame(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove game: %w", err)
	}
	return affected > 0, nil
}

// RemoveSeries deletes a series record and reports whether it existed. Games
// that still reference the id are left untouched.
func (s *Store) RemoveSeries(ctx context.Context, id string) (bool, error) {
	return removeSeries(ctx, s.db, id)
}
