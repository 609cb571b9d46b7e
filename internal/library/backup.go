package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"seriesclean/internal/fileutil"
)

// Backup checkpoints the write-ahead log and copies the database file to
// dest. The batch lock is held for the duration so no cleanup runs halfway
// through the copy.
func (s *Store) Backup(ctx context.Context, dest string) (int64, error) {
	if dest == "" {
		return 0, fmt.Errorf("backup destination is empty")
	}
	if sameFile(dest, s.path) {
		return 0, fmt.Errorf("backup destination is the live database")
	}

	locked, err := s.lock.TryLockContext(ctx, batchLockRetry)
	if err != nil {
		return 0, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("acquire library lock: %s is held by another process", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()

	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return 0, fmt.Errorf("checkpoint wal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("ensure backup directory: %w", err)
	}
	n, err := fileutil.CopyVerified(s.path, dest)
	if err != nil {
		return 0, fmt.Errorf("copy database: %w", err)
	}
	return n, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
