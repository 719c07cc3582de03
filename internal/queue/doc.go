// Package queue persists pending work items in a flat text file and exposes
// FIFO helpers for driving their lifecycle.
//
// Each entry occupies one line with its three fields joined by " | " and the
// tag list comma-joined. The format performs no escaping: a pipe or comma
// inside a title or tag corrupts parsing. Access is serialized by a sidecar
// flock and rewrites go through a temp file plus rename, so concurrent
// invocations of add and pop do not interleave partial writes. The file
// stays plain text so the operator can inspect and edit it directly.
//
// Treat this package as the single source of truth for queue semantics. The
// file is working state for a single operator, not a durable job store: there
// is no retry bookkeeping and no history (see internal/history for the
// publish record).
package queue
