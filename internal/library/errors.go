package library

import "errors"

var (
	// ErrNotFound is returned when a record targeted by a write does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrBatchClosed is returned when an Updater is used after its scope ended.
	ErrBatchClosed = errors.New("batch scope already closed")
)
