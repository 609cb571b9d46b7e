package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"seriesclean/internal/library"
)

type seriesRowJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Games int    `json:"games"`
}

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:     "series",
		Short:   "Inspect series in the library",
		GroupID: seriesCleanerGroup,
	}
	seriesCmd.AddCommand(newSeriesListCommand(ctx))
	return seriesCmd
}

func newSeriesListCommand(ctx *commandContext) *cobra.Command {
	var singleOnly bool
	var unusedOnly bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List series with the number of games referencing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if singleOnly && unusedOnly {
				return fmt.Errorf("--single-only and --unused cannot be combined")
			}
			return ctx.withStore(func(store *library.Store) error {
				usage, err := store.SeriesUsage(cmd.Context())
				if err != nil {
					return err
				}
				usage = filterUsage(usage, singleOnly, unusedOnly)
				sortUsageByName(usage)

				if jsonOutput {
					rows := make([]seriesRowJSON, 0, len(usage))
					for _, u := range usage {
						rows = append(rows, seriesRowJSON{ID: u.Series.ID, Name: u.Series.Name, Games: u.Games})
					}
					return writeJSON(cmd, rows)
				}

				out := cmd.OutOrStdout()
				if len(usage) == 0 {
					fmt.Fprintln(out, "No series found")
					return nil
				}
				rows := make([][]string, 0, len(usage))
				for _, u := range usage {
					rows = append(rows, []string{u.Series.Name, u.Series.ID, strconv.Itoa(u.Games)})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"Series", "ID", "Games"},
					rows:    rows,
					aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
				}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&singleOnly, "single-only", false, "Only show series referenced by exactly one game")
	cmd.Flags().BoolVar(&unusedOnly, "unused", false, "Only show series no game references")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the list as JSON")
	return cmd
}

func filterUsage(usage []library.SeriesUsage, singleOnly, unusedOnly bool) []library.SeriesUsage {
	if !singleOnly && !unusedOnly {
		return usage
	}
	filtered := usage[:0]
	for _, u := range usage {
		if (singleOnly && u.Games == 1) || (unusedOnly && u.Games == 0) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// sortUsageByName orders series by locale-aware, case-insensitive name with
// the id as tie breaker.
func sortUsageByName(usage []library.SeriesUsage) {
	col := collate.New(language.English, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(usage, func(i, j int) bool {
		if c := col.CompareString(usage[i].Series.Name, usage[j].Series.Name); c != 0 {
			return c < 0
		}
		return usage[i].Series.ID < usage[j].Series.ID
	})
}
