// Package sqlite provides a SQLite-based implementation of driven.LibraryStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Documents are stored one per row with an explicit position column so the
// library's insertion order survives a round trip.
//
// # Data Location
//
// By default, the database is stored at ~/.docsift/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. Save replaces the whole list inside a
// single transaction, so a concurrent Load sees either the old or the new list.
package sqlite
