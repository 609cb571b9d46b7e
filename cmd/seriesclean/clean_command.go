package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"seriesclean/internal/cleanup"
	"seriesclean/internal/library"
	"seriesclean/internal/logging"
	"seriesclean/internal/notifications"
)

type cleanOptions struct {
	assumeYes    bool
	dryRun       bool
	previewLimit int
	jsonOutput   bool
	backup       bool
}

type candidateJSON struct {
	SeriesID   string `json:"series_id"`
	SeriesName string `json:"series_name"`
	GameID     string `json:"game_id"`
	GameName   string `json:"game_name"`
}

type cleanResultJSON struct {
	RunID      string          `json:"run_id,omitempty"`
	Outcome    string          `json:"outcome"`
	DryRun     bool            `json:"dry_run,omitempty"`
	Candidates []candidateJSON `json:"candidates"`
	Removed    int             `json:"removed"`
	Error      string          `json:"error,omitempty"`
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var opts cleanOptions

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Clean Single-Game Series",
		Long:    "Find series that exactly one game belongs to, preview them, and remove them after confirmation.",
		GroupID: seriesCleanerGroup,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("preview-limit") {
				opts.previewLimit = cfg.Cleanup.PreviewLimit
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			notifier := ctx.notifier()

			return ctx.withStore(func(store *library.Store) error {
				out := cmd.OutOrStdout()
				if opts.jsonOutput {
					// Dialog text goes to stderr so stdout stays machine readable.
					out = cmd.ErrOrStderr()
				}
				ui := newTerminalUI(cmd.Context(), cmd.InOrStdin(), out, cmd.ErrOrStderr(), opts.assumeYes)

				svc, err := cleanup.New(cleanup.Options{
					Store:             store,
					UI:                ui,
					Notifier:          notifier,
					Logger:            logger,
					PreviewLimit:      opts.previewLimit,
					NotifyEachRemoval: cfg.Cleanup.NotifyEachRemoval,
				})
				if err != nil {
					return err
				}

				if opts.dryRun {
					return runDryClean(cmd, svc, ui, opts)
				}
				if opts.backup {
					path, _, err := backupLibrary(cmd, store, cfg.Paths.DataDir, "")
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Database backed up to %s\n\n", path)
				}

				started := time.Now()
				result := svc.Run(cmd.Context())
				reportCompletion(cmd.Context(), logger, notifier, result, time.Since(started))

				if opts.jsonOutput {
					if err := writeJSON(cmd, toCleanResultJSON(result, false)); err != nil {
						return err
					}
				}
				if result.Outcome == cleanup.OutcomeFailed {
					return errReported
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.assumeYes, "yes", "y", false, "Remove without asking for confirmation")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show the series that would be removed and exit")
	cmd.Flags().IntVar(&opts.previewLimit, "preview-limit", cleanup.DefaultPreviewLimit, "Maximum number of series listed in the preview")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&opts.backup, "backup", false, "Back up the library database before cleaning")
	return cmd
}

func runDryClean(cmd *cobra.Command, svc *cleanup.Service, ui *terminalUI, opts cleanOptions) error {
	candidates, err := svc.Scan(cmd.Context())
	if err != nil {
		ui.ShowError(cleanup.Title, err.Error())
		return errReported
	}
	if opts.jsonOutput {
		return writeJSON(cmd, toCleanResultJSON(cleanup.Result{Candidates: candidates}, true))
	}
	if len(candidates) == 0 {
		ui.ShowMessage(cleanup.Title, "No single-game series found.")
		return nil
	}
	ui.ShowMessage(cleanup.Title, fmt.Sprintf("%d series would be removed (dry run):\n\n%s",
		len(candidates), svc.Preview(candidates)))
	return nil
}

// reportCompletion sends the run summary notification. Declined and empty
// runs stay silent.
func reportCompletion(ctx context.Context, logger *slog.Logger, notifier notifications.Service, result cleanup.Result, elapsed time.Duration) {
	var err error
	switch {
	case result.Outcome == cleanup.OutcomeApplied:
		err = notifier.NotifyCleanupCompleted(ctx, result.Removed, 0, elapsed)
	case result.Outcome == cleanup.OutcomeFailed && result.Removed > 0:
		err = notifier.NotifyCleanupCompleted(ctx, result.Removed, len(result.Candidates)-result.Removed, elapsed)
	case result.Outcome == cleanup.OutcomeFailed:
		err = notifier.NotifyError(ctx, result.Err, "cleaning series")
	}
	if err != nil {
		logging.WarnWithContext(logger, "cleanup notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldRunID, result.RunID),
			logging.String(logging.FieldImpact, "cleanup result unaffected"),
		)
	}
}

func toCleanResultJSON(result cleanup.Result, dryRun bool) cleanResultJSON {
	out := cleanResultJSON{
		RunID:      result.RunID,
		Outcome:    result.Outcome.String(),
		DryRun:     dryRun,
		Candidates: make([]candidateJSON, 0, len(result.Candidates)),
		Removed:    result.Removed,
	}
	if dryRun {
		out.Outcome = "preview"
	}
	for _, c := range result.Candidates {
		item := candidateJSON{SeriesID: c.Series.ID, SeriesName: c.Series.Name}
		if c.Game != nil {
			item.GameID = c.Game.ID
			item.GameName = c.Game.Name
		}
		out.Candidates = append(out.Candidates, item)
	}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}
	return out
}
