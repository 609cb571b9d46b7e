// Package library persists games and series in SQLite and exposes the scoped
// batch primitive used for bulk edits.
//
// A Game embeds the identifiers of the series it belongs to as a JSON array;
// there is no join table, so the association set is read and rewritten with
// the game record. BufferedUpdate wraps a sequence of writes in one
// transaction guarded by an advisory file lock, and Updater.Isolate scopes a
// single step to a savepoint so one failing step can be rolled back without
// discarding the rest of the batch.
//
// Schema changes bump schemaVersion in schema.go; users re-import the library
// to adopt a new schema.
package library
