package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"seriesclean/internal/library"
	"seriesclean/internal/logging"
)

type removal struct {
	candidate          RemovalCandidate
	gameMissing        bool
	associationCleared bool
	seriesExisted      bool
}

// ApplyRemoval removes every candidate inside one buffered update and returns
// how many were processed. The caller must have obtained confirmation. A
// failing candidate is rolled back on its own and reported in the returned
// error while the remaining candidates continue; notifications and audit log
// lines are emitted only after the batch commits.
func (s *Service) ApplyRemoval(ctx context.Context, candidates []RemovalCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	var (
		applied []removal
		failed  []error
	)
	err := s.store.BufferedUpdate(ctx, func(u library.Updater) error {
		applied = applied[:0]
		failed = failed[:0]
		for _, c := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := removal{candidate: c}
			if err := u.Isolate(ctx, func() error { return removeCandidate(ctx, u, &r) }); err != nil {
				failed = append(failed, newRemovalError(c, err))
				continue
			}
			applied = append(applied, r)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("apply removal batch: %w", err)
	}

	logger := logging.WithContext(ctx, s.logger)
	for _, r := range applied {
		s.report(ctx, logger, r)
	}
	return len(applied), errors.Join(failed...)
}

func removeCandidate(ctx context.Context, u library.Updater, r *removal) error {
	seriesID := r.candidate.Series.ID
	if r.candidate.Game != nil {
		game, err := u.Game(ctx, r.candidate.Game.ID)
		if err != nil {
			return fmt.Errorf("re-fetch game: %w", err)
		}
		switch {
		case game == nil:
			r.gameMissing = true
		case game.HasSeries(seriesID):
			game.DropSeries(seriesID)
			if err := u.UpdateGame(ctx, game); err != nil {
				return fmt.Errorf("update game: %w", err)
			}
			r.associationCleared = true
		}
	}
	existed, err := u.RemoveSeries(ctx, seriesID)
	if err != nil {
		return fmt.Errorf("remove series record: %w", err)
	}
	r.seriesExisted = existed
	return nil
}

func (s *Service) report(ctx context.Context, logger *slog.Logger, r removal) {
	seriesName := seriesLabel(r.candidate)
	gameName := gameLabel(r.candidate)
	if !r.seriesExisted {
		logger.Debug("series already absent", logging.Args(
			logging.String("series_id", r.candidate.Series.ID),
		)...)
		return
	}
	logger.Info(fmt.Sprintf("Removed series '%s' from database (Game: %s)", seriesName, gameName), logging.Args(
		logging.String("series_id", r.candidate.Series.ID),
		logging.String("game_id", candidateGameID(r.candidate)),
		logging.Bool("association_cleared", r.associationCleared),
		logging.Bool("game_missing", r.gameMissing),
	)...)

	if !s.notifyEach || s.notifier == nil {
		return
	}
	if err := s.notifier.NotifySeriesRemoved(ctx, seriesName, gameName); err != nil {
		logging.WarnWithContext(logger, "removal notification failed", "notification_failed",
			logging.Error(err),
			logging.String("series_id", r.candidate.Series.ID),
			logging.String(logging.FieldImpact, "removal applied; notification not delivered"),
		)
	}
}

func newRemovalError(c RemovalCandidate, err error) *RemovalError {
	return &RemovalError{
		SeriesID:   c.Series.ID,
		SeriesName: seriesLabel(c),
		GameID:     candidateGameID(c),
		Err:        err,
	}
}

func candidateGameID(c RemovalCandidate) string {
	if c.Game == nil {
		return ""
	}
	return c.Game.ID
}
