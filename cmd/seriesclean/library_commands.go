package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seriesclean/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the library database",
	}
	libraryCmd.AddCommand(newLibraryImportCommand(ctx))
	libraryCmd.AddCommand(newLibraryStatsCommand(ctx))
	libraryCmd.AddCommand(newLibraryBackupCommand(ctx))
	return libraryCmd
}

func newLibraryImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import games and series from a JSON export (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open export: %w", err)
				}
				defer file.Close()
				in = file
			}
			doc, err := library.DecodeExport(in)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *library.Store) error {
				summary, err := store.Import(cmd.Context(), doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d series and %d games into %s\n",
					summary.Series, summary.Games, store.Path())
				return nil
			})
		},
	}
}

func newLibraryStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, map[string]int{
						"games":               stats.Games,
						"series":              stats.Series,
						"games_with_series":   stats.GamesWithSeries,
						"unreferenced_series": stats.UnreferencedSeries,
						"single_game_series":  stats.SingleGameSeries,
						"dangling_references": stats.DanglingRefs,
					})
				}
				rows := [][]string{
					{"Games", strconv.Itoa(stats.Games)},
					{"Games with series", strconv.Itoa(stats.GamesWithSeries)},
					{"Series", strconv.Itoa(stats.Series)},
					{"Unreferenced series", strconv.Itoa(stats.UnreferencedSeries)},
					{"Single-game series", strconv.Itoa(stats.SingleGameSeries)},
					{"Dangling references", strconv.Itoa(stats.DanglingRefs)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
					headers: []string{"Metric", "Count"},
					rows:    rows,
					aligns:  []columnAlignment{alignLeft, alignRight},
					footer:  []string{"Database", store.Path()},
				}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the counts as JSON")
	return cmd
}

func newLibraryBackupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [destination]",
		Short: "Copy the library database to a backup file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dest := ""
			if len(args) == 1 {
				dest = strings.TrimSpace(args[0])
			}
			return ctx.withStore(func(store *library.Store) error {
				path, size, err := backupLibrary(cmd, store, cfg.Paths.DataDir, dest)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s (%d bytes) to %s\n", store.Path(), size, path)
				return nil
			})
		},
	}
}

// backupLibrary writes a verified copy of the database. An empty dest picks a
// timestamped file under <data_dir>/backups.
func backupLibrary(cmd *cobra.Command, store *library.Store, dataDir, dest string) (string, int64, error) {
	if dest == "" {
		name := fmt.Sprintf("library-%s.db", time.Now().UTC().Format("20060102-150405"))
		dest = filepath.Join(dataDir, "backups", name)
	}
	size, err := store.Backup(cmd.Context(), dest)
	if err != nil {
		return "", 0, fmt.Errorf("backup library: %w", err)
	}
	return dest, size, nil
}
