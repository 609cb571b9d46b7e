package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"seriesclean/internal/library"
	"seriesclean/internal/logging"
)

// Title is shown on every message the cleanup presents.
const Title = "Series Cleaner"

const (
	msgNoCandidates = "No single-game series found."
	msgPreviewHead  = "Series scheduled for removal:\n\n"
	msgConfirm      = "Found %d series with only one game.\n\n" +
		"Do you want to remove these series from the database?\n\n" +
		"This will:\n" +
		"- Remove the series metadata\n" +
		"- Remove the series association from affected games\n\n" +
		"This action cannot be undone without a database backup."
	msgApplied = "Successfully removed %d single-game series."
	msgFailed  = "An error occurred while cleaning series:\n%s"
)

// Store is the library surface the cleanup reads and mutates.
type Store interface {
	ListSeries(ctx context.Context) ([]*library.Series, error)
	ListGames(ctx context.Context) ([]*library.Game, error)
	BufferedUpdate(ctx context.Context, fn func(library.Updater) error) error
}

// UI presents messages and collects the confirmation answer.
type UI interface {
	ShowMessage(title, body string)
	// Confirm blocks until the user answers. An interrupted prompt returns
	// an error wrapping context.Canceled and is treated as a decline.
	Confirm(title, body string) (bool, error)
	ShowError(title, body string)
}

// Notifier receives one call per removed series.
type Notifier interface {
	NotifySeriesRemoved(ctx context.Context, seriesName, gameName string) error
}

// Outcome is the terminal state of one Run.
type Outcome int

const (
	OutcomeNoCandidates Outcome = iota
	OutcomeDeclined
	OutcomeApplied
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoCandidates:
		return "no_candidates"
	case OutcomeDeclined:
		return "declined"
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports what a Run did.
type Result struct {
	RunID      string
	Outcome    Outcome
	Candidates []RemovalCandidate
	Removed    int
	Err        error
}

// Options configures a Service.
type Options struct {
	Store    Store
	UI       UI
	Notifier Notifier
	Logger   *slog.Logger
	// PreviewLimit caps the preview lines; non-positive uses DefaultPreviewLimit.
	PreviewLimit int
	// NotifyEachRemoval posts one notification per removed series.
	NotifyEachRemoval bool
}

// Service runs the single-game series cleanup.
type Service struct {
	store        Store
	ui           UI
	notifier     Notifier
	logger       *slog.Logger
	previewLimit int
	notifyEach   bool
}

// New constructs a Service. Store and UI are required.
func New(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("cleanup requires a store")
	}
	if opts.UI == nil {
		return nil, errors.New("cleanup requires a ui")
	}
	return &Service{
		store:        opts.Store,
		ui:           opts.UI,
		notifier:     opts.Notifier,
		logger:       logging.NewComponentLogger(opts.Logger, "cleanup"),
		previewLimit: opts.PreviewLimit,
		notifyEach:   opts.NotifyEachRemoval,
	}, nil
}

// Scan loads the library and returns the current candidates without side effects.
func (s *Service) Scan(ctx context.Context) ([]RemovalCandidate, error) {
	series, err := s.store.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	candidates := FindSingleGameSeries(series, games)
	logging.WithContext(ctx, s.logger).Debug("library scanned",
		logging.Int("series", len(series)),
		logging.Int("games", len(games)),
		logging.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// Preview renders candidates with the configured limit.
func (s *Service) Preview(candidates []RemovalCandidate) string {
	return BuildPreview(candidates, s.previewLimit)
}

// Run performs one full invocation: scan, preview, confirm, apply, report.
func (s *Service) Run(ctx context.Context) (result Result) {
	result.RunID = uuid.NewString()
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, s.logger)

	defer func() {
		if r := recover(); r != nil {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("cleanup panicked: %v", r)
			s.fail(logger, "cleanup_panic", result.Err)
		}
	}()

	candidates, err := s.Scan(ctx)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		s.fail(logger, "store_read_failed", err)
		return result
	}
	result.Candidates = candidates

	if len(candidates) == 0 {
		result.Outcome = OutcomeNoCandidates
		logger.Info("no single-game series found")
		s.ui.ShowMessage(Title, msgNoCandidates)
		return result
	}

	s.ui.ShowMessage(Title, msgPreviewHead+s.Preview(candidates))

	confirmed, err := s.ui.Confirm(Title, fmt.Sprintf(msgConfirm, len(candidates)))
	if errors.Is(err, context.Canceled) {
		// An interrupted prompt is a decline; nothing has been mutated yet.
		confirmed, err = false, nil
	}
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("confirmation prompt: %w", err)
		s.fail(logger, "confirmation_failed", result.Err)
		return result
	}
	if !confirmed {
		result.Outcome = OutcomeDeclined
		logger.Info("cleanup declined", logging.Int("candidates", len(candidates)))
		return result
	}

	removed, err := s.ApplyRemoval(ctx, candidates)
	result.Removed = removed
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("removed %d of %d series: %w", removed, len(candidates), err)
		s.fail(logger, "store_write_failed", result.Err,
			logging.Int("removed", removed),
			logging.Int("candidates", len(candidates)),
		)
		return result
	}

	result.Outcome = OutcomeApplied
	s.ui.ShowMessage(Title, fmt.Sprintf(msgApplied, removed))
	logger.Info(fmt.Sprintf("removed %d single-game series from the database", removed),
		logging.Int("removed", removed),
	)
	return result
}

func (s *Service) fail(logger *slog.Logger, eventType string, err error, attrs ...slog.Attr) {
	attrs = append(attrs,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect the library database; partially applied removals are kept"),
	)
	logging.ErrorWithContext(logger, "error while cleaning single-game series", eventType, attrs...)
	s.ui.ShowError(Title, fmt.Sprintf(msgFailed, err.Error()))
}
