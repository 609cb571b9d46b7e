// Package logs reads the seriesclean log file for the `logs` command: the last
// N lines, optionally filtered, and a polling follow mode that stops with the
// caller's context.
package logs
