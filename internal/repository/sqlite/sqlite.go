// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of the SQLite C
// code, so no CGo toolchain is needed and cross-compilation stays trivial.
// sql.DB is a bounded connection pool, not a single connection: each request
// borrows a connection for the duration of a query and returns it on every
// exit path, and context deadlines bound how long a caller can wait for one.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init function.
	_ "modernc.org/sqlite"
)

const (
	// Pool bounds mirror the process's modest write concurrency; exhaustion
	// surfaces as a context deadline error on the store call, never a hang.
	maxOpenConns    = 5
	connMaxIdleTime = 5 * time.Second
)

// DB wraps the connection pool and carries the repository implementations.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath, configures the pool, and runs
// migrations.
//
// dbPath is either a file path ("data/todo.db") or ":memory:" for an
// in-memory database (used by tests, lost on close).
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if dbPath == ":memory:" {
		// Each pooled connection would otherwise get its own empty in-memory
		// database; a single connection keeps tests on one shared instance.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(maxOpenConns)
		conn.SetConnMaxIdleTime(connMaxIdleTime)
	}

	// Fail fast on a bad path or permissions instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Referential integrity between tasks and users.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL and releasing the file
// lock. Callers defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent
// so it is safe on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id),
			title       TEXT NOT NULL,
			description TEXT,
			status      TEXT NOT NULL,
			deadline    TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
