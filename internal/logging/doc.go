// Package logging assembles structured slog loggers and formatting helpers used
// across seriesclean.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so every line emitted during one
// cleanup run carries the same run identifier. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
