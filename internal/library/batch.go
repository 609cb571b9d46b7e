package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const batchLockRetry = 50 * time.Millisecond

// Updater is the write surface available inside a BufferedUpdate scope.
type Updater interface {
	// Game re-reads a game inside the scope. A missing game yields (nil, nil).
	Game(ctx context.Context, id string) (*Game, error)
	UpdateGame(ctx context.Context, game *Game) error
	RemoveSeries(ctx context.Context, id string) (bool, error)
	// Isolate runs fn as a single step. When fn fails, only the writes made
	// by fn are discarded and the error is returned; the scope stays usable.
	Isolate(ctx context.Context, fn func() error) error
}

// BufferedUpdate runs fn inside one transaction so the batch becomes visible
// at once when fn returns nil. Any error from fn rolls the whole batch back.
// The advisory lock keeps concurrent seriesclean processes from interleaving
// batches against the same database.
func (s *Store) BufferedUpdate(ctx context.Context, fn func(Updater) error) (err error) {
	if fn == nil {
		return errors.New("batch function is nil")
	}

	locked, err := s.lock.TryLockContext(ctx, batchLockRetry)
	if err != nil {
		return fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire library lock: %s is held by another process", s.lock.Path())
	}
	defer func() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("release library lock: %w", unlockErr)
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	b := &batch{tx: tx}
	defer func() {
		b.closed = true
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(b); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

type batch struct {
	tx     *sql.Tx
	steps  int
	closed bool
}

func (b *batch) Game(ctx context.Context, id string) (*Game, error) {
	if b.closed {
		return nil, ErrBatchClosed
	}
	return getGame(ctx, b.tx, id)
}

func (b *batch) UpdateGame(ctx context.Context, game *Game) error {
	if b.closed {
		return ErrBatchClosed
	}
	return updateGame(ctx, b.tx, game)
}

func (b *batch) RemoveSeries(ctx context.Context, id string) (bool, error) {
	if b.closed {
		return false, ErrBatchClosed
	}
	return removeSeries(ctx, b.tx, id)
}

func (b *batch) Isolate(ctx context.Context, fn func() error) error {
	if b.closed {
		return ErrBatchClosed
	}
	b.steps++
	name := fmt.Sprintf("step_%d", b.steps)
	if _, err := b.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("open savepoint: %w", err)
	}
	if err := fn(); err != nil {
		if _, rbErr := b.tx.ExecContext(ctx, "ROLLBACK TO "+name); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback savepoint: %w", rbErr))
		}
		if _, relErr := b.tx.ExecContext(ctx, "RELEASE "+name); relErr != nil {
			return errors.Join(err, fmt.Errorf("release savepoint: %w", relErr))
		}
		return err
	}
	if _, err := b.tx.ExecContext(ctx, "RELEASE "+name); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
