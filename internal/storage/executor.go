package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/timekeep/timekeep/internal/logger"
	"github.com/timekeep/timekeep/internal/schema"
)

// Executor owns the single active database connection and executes
// parameterized statements against it. There is no application-level
// lock: overlapping writes are serialized by SQLite itself, and the
// deployment is single-user, single-window.
type Executor struct {
	db   *sqlx.DB
	name string
	log  logger.Logger
}

// NewExecutor returns an executor with no open connection. Connect must
// be called (directly or through Run's recovery path) before use.
func NewExecutor() *Executor {
	return &Executor{log: logger.DB()}
}

// NewExecutorWithDB wraps an existing sqlx handle. Used by tests that
// substitute a mock driver for the real engine.
func NewExecutorWithDB(db *sqlx.DB, name string) *Executor {
	return &Executor{db: db, name: name, log: logger.DB()}
}

// DefaultDatabasePath returns the standard location of the timekeep
// database under the user's data directory.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "timekeep", "timekeep.db")
}

// Connect opens the named database file, closing any existing
// connection first. An empty name falls back to the last connected
// name, then to DefaultDatabasePath. Foreign keys and WAL journaling
// are enabled and all schema tables are created idempotently.
func (e *Executor) Connect(name string) error {
	if e.db != nil {
		e.db.Close()
		e.db = nil
	}

	if name == "" {
		name = e.name
	}
	if name == "" {
		name = DefaultDatabasePath()
	}

	if name != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return fmt.Errorf("%w: create directory: %v", ErrConnectionFailed, err)
		}
	}

	db, err := sqlx.Open("sqlite", name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("%w: exec pragma %q: %v", ErrConnectionFailed, p, err)
		}
	}

	if _, err := db.Exec(schema.DDL()); err != nil {
		db.Close()
		return fmt.Errorf("%w: create schema: %v", ErrConnectionFailed, err)
	}

	e.db = db
	e.name = name
	e.log.Info("database connected", "name", name)
	return nil
}

// Close releases the connection if open. Calling it on an already
// closed executor is a no-op.
func (e *Executor) Close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

// Name returns the database name of the current or last connection.
func (e *Executor) Name() string {
	return e.name
}

// Run executes one parameterized statement and returns its structured
// outcome. If the connection has been dropped, it reconnects to the
// last-known database first. SELECT, PRAGMA and WITH statements return
// their rows; everything else reports changes and the last inserted id.
// A WITH prefixing a write statement is still treated as a read, so ad
// hoc CTE writes should be issued as plain statements instead.
// Engine errors are captured in the Result, never raised.
func (e *Executor) Run(query string, args ...interface{}) Result {
	if e.db == nil {
		e.log.Warn("no open connection, reconnecting", "name", e.name)
		if err := e.Connect(e.name); err != nil {
			return failure(err)
		}
	}

	if isRead(query) {
		rows, err := e.db.Queryx(query, args...)
		if err != nil {
			e.log.Error("query failed", "query", query, "error", err)
			return failure(err)
		}
		defer rows.Close()

		out := []map[string]interface{}{}
		for rows.Next() {
			row := map[string]interface{}{}
			if err := rows.MapScan(row); err != nil {
				e.log.Error("row scan failed", "query", query, "error", err)
				return failure(err)
			}
			normalizeRow(row)
			out = append(out, row)
		}
		if err := rows.Err(); err != nil {
			return failure(err)
		}
		return Result{Success: true, Rows: out}
	}

	res, err := e.db.Exec(query, args...)
	if err != nil {
		e.log.Error("statement failed", "query", query, "error", err)
		return failure(err)
	}
	changes, _ := res.RowsAffected()
	id, _ := res.LastInsertId()
	return Result{Success: changes > 0, Changes: changes, LastInsertID: id}
}

// ResetDatabase wipes all rows from every table while keeping the
// schema, then reapplies the idempotent DDL. A no-op with a warning
// when no connection is open.
func (e *Executor) ResetDatabase() error {
	if e.db == nil {
		e.log.Warn("reset requested with no open connection")
		return nil
	}

	// Children first so foreign keys never block the wipe.
	tables := []string{
		"time_entries", "timers", "activities", "alerts",
		"reports", "settings", "tags", "projects",
	}
	for _, t := range tables {
		if _, err := e.db.Exec("DELETE FROM " + t); err != nil {
			return fmt.Errorf("reset %s: %w", t, err)
		}
	}
	if _, err := e.db.Exec("DELETE FROM sqlite_sequence"); err != nil {
		e.log.Warn("reset sequence failed", "error", err)
	}
	if _, err := e.db.Exec(schema.DDL()); err != nil {
		return fmt.Errorf("reinitialize schema: %w", err)
	}
	e.log.Info("database reset", "name", e.name)
	return nil
}

func isRead(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "PRAGMA", "WITH":
		return true
	}
	return false
}

// normalizeRow converts driver byte slices to strings so rows compare
// cleanly regardless of the underlying driver.
func normalizeRow(row map[string]interface{}) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}
