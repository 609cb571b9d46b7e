// Package notifications publishes cleanup events to an ntfy topic.
//
// Each removed series can produce one low-priority message so a remote
// observer sees the same per-removal trail the log records. When no topic is
// configured NewService returns a no-op implementation and callers never need
// to nil-check.
package notifications
