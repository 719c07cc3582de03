// Package history records published posts in SQLite.
//
// The record is informational: the pipeline writes one row after a
// successful publish and `rtvk history` reads them back. Nothing in the
// pipeline depends on it, so a history write failure never fails a run.
// Schema changes bump schemaVersion; the database is cheap to delete and
// recreate.
package history
