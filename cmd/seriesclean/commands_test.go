package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"seriesclean/internal/testsupport"
)

func TestRootHelpShowsSeriesCleanerGroup(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, env.configPath, "")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	requireContains(t, out, "Series Cleaner:")
	requireContains(t, out, "Clean Single-Game Series")
}

func TestSeriesListFilters(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seed(t, testsupport.Fixture{
		Series: map[string]string{"s1": "zeta", "s2": "Alpha", "s3": "Orphan"},
		Games:  map[string][]string{"g1": {"s1"}, "g2": {"s2"}, "g3": {"s2"}},
	})

	out, _, err := runCLI(t, []string{"series", "list", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("series list: %v", err)
	}
	var rows []seriesRowJSON
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(rows) != 3 || rows[0].Name != "Alpha" || rows[2].Name != "zeta" {
		t.Fatalf("expected case-insensitive name order, got %+v", rows)
	}

	out, _, err = runCLI(t, []string{"series", "list", "--single-only"}, env.configPath, "")
	if err != nil {
		t.Fatalf("series list --single-only: %v", err)
	}
	requireContains(t, out, "zeta")
	requireNotContains(t, out, "Alpha")
	requireNotContains(t, out, "Orphan")

	out, _, err = runCLI(t, []string{"series", "list", "--unused"}, env.configPath, "")
	if err != nil {
		t.Fatalf("series list --unused: %v", err)
	}
	requireContains(t, out, "Orphan")
	requireNotContains(t, out, "zeta")

	if _, _, err := runCLI(t, []string{"series", "list", "--unused", "--single-only"}, env.configPath, ""); err == nil {
		t.Fatal("expected conflicting flags to fail")
	}
}

func TestLibraryImportAndStats(t *testing.T) {
	env := setupCLITestEnv(t)
	export := filepath.Join(env.baseDir, "export.json")
	doc := `{
  "series": [{"id": "s1", "name": "Alpha"}, {"id": "s2", "name": "Beta"}],
  "games": [
    {"id": "g1", "name": "Alpha One", "series_ids": ["s1"]},
    {"id": "g2", "name": "Beta One", "series_ids": ["s2", "missing"]},
    {"id": "g3", "name": "Beta Two", "series_ids": ["s2"]},
    {"name": "No Series"}
  ]
}`
	if err := os.WriteFile(export, []byte(doc), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	out, _, err := runCLI(t, []string{"library", "import", export}, env.configPath, "")
	if err != nil {
		t.Fatalf("library import: %v", err)
	}
	requireContains(t, out, "Imported 2 series and 4 games")

	out, _, err = runCLI(t, []string{"library", "stats", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("library stats: %v", err)
	}
	var stats map[string]int
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := map[string]int{
		"games":               4,
		"series":              2,
		"games_with_series":   3,
		"unreferenced_series": 0,
		"single_game_series":  1,
		"dangling_references": 1,
	}
	for key, value := range want {
		if stats[key] != value {
			t.Fatalf("%s: got %d want %d (all=%v)", key, stats[key], value, stats)
		}
	}

	out, _, err = runCLI(t, []string{"library", "stats"}, env.configPath, "")
	if err != nil {
		t.Fatalf("library stats table: %v", err)
	}
	requireContains(t, out, "Single-game series")
}

func TestLibraryImportFromStdin(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"library", "import", "-"}, env.configPath,
		`{"series":[{"id":"s1","name":"Solo"}],"games":[{"id":"g1","name":"Only","series_ids":["s1"]}]}`)
	if err != nil {
		t.Fatalf("library import -: %v", err)
	}
	requireContains(t, out, "Imported 1 series and 1 games")
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"test-notify"}, env.configPath, "")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Notifications disabled")
}

func TestLibraryBackupAndCleanBackup(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seed(t, cliFixture)

	dest := filepath.Join(env.baseDir, "manual.db")
	out, _, err := runCLI(t, []string{"library", "backup", dest}, env.configPath, "")
	if err != nil {
		t.Fatalf("library backup: %v", err)
	}
	requireContains(t, out, "Backed up")
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected backup at %s: %v", dest, err)
	}

	out, _, err = runCLI(t, []string{"clean", "--yes", "--backup"}, env.configPath, "")
	if err != nil {
		t.Fatalf("clean --backup: %v", err)
	}
	requireContains(t, out, "Database backed up to")
	entries, err := os.ReadDir(filepath.Join(env.cfg.Paths.DataDir, "backups"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one automatic backup, got %v (%v)", entries, err)
	}
}

func TestDoctorReportsMissingDatabase(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"doctor"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected doctor to fail without a database")
	}
	requireContains(t, out, "Library database")
	requireContains(t, out, "FAIL")

	env.seed(t, cliFixture)
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath, "")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "3 games, 2 series, 1 single-game")
}

func TestLogsFiltersByRun(t *testing.T) {
	env := setupCLITestEnv(t)
	logFile := env.cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "ts INFO run_id=aaa removed\nts INFO run_id=bbb removed\n"
	if err := os.WriteFile(logFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"logs", "--run", "bbb"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "run_id=bbb")
	requireNotContains(t, out, "run_id=aaa")
}
