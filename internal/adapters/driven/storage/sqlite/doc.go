// Package sqlite provides a SQLite-backed driven.RecordStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Record fields are stored as a JSON object per row; integers keep their
// kind on the way back because decoding preserves numbers.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.flattree/data/flattree.db
//
// # Thread Safety
//
// All operations are thread-safe. Replace runs in a single transaction, so a
// concurrent Load sees either the old or the new record set.
package sqlite
