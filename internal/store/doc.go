// Package store provides a SQLite-backed journal.
//
// The journal is a single append-only table:
//   - seq: AUTOINCREMENT primary key, the only ordering key
//   - cursor: opaque per-entry identifier from a journal.CursorGenerator
//   - message: the MESSAGE field
//   - int_fields / str_fields: remaining fields as JSON objects, kept apart
//     so integer fields round-trip as int64 and text stays text
//
// Reverse cursors stream rows ORDER BY seq DESC, so a scan that stops at the
// newest match never reads the older part of the table.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - a single pooled connection; an open cursor holds it until Close
package store
