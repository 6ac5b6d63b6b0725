// Package storage implements the persistent backing store spec.md §4.A
// describes: a single table-like store with two logical collections
// (oids, events) and four operations (exec, select, insert/update/delete,
// init), each atomic with respect to the others.
//
// The teacher's SQLite backend mirrors this shape closely — Attach/Detach
// become Open/Close, and each entity gets its own small set of typed
// accessor methods instead of a generic query language, since Go's
// database/sql already gives atomicity per statement and per transaction.
package storage

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Error wraps any storage-layer failure (SQL syntax, IO, constraint
// violation) per spec.md §7's StorageError taxonomy entry.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Backend is the process-wide handle onto the backing SQLite database.
// It has no mutex of its own: the coordinator that owns it (internal/agent)
// is responsible for the coarse "one lookup-then-mutate-then-event
// sequence at a time" discipline spec.md §5 requires. Backend only
// guarantees that each individual method call here is atomic.
type Backend struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path (spec.md §4.A's init) and
// applies the schema. The parent directory is created if missing.
func Open(path string) (*Backend, error) {
	if dir := dirOf(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &Error{Op: "init", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Op: "init", Err: err}
	}
	db.SetMaxOpenConns(1) // single-writer discipline (spec.md §4.A).

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, &Error{Op: "init", Err: err}
	}

	return &Backend{db: db, path: path}, nil
}

// Close releases the database handle.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}
