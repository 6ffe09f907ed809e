// Package sqlite provides a SQLite-based implementation of the session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It persists:
//
//   - Sessions: conversation lifecycles
//   - Messages: chat turns with answer sources
//   - Feedback: thumbs up/down ratings of assistant answers
//   - Builds: index build history for diagnostics
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ansa/data/sessions.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
