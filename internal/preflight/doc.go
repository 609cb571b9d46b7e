// Package preflight runs environment checks before a cleanup touches the
// library: directory permissions, the database file, and the optional ntfy
// topic. Results are plain values so the CLI can render them however it likes.
package preflight
