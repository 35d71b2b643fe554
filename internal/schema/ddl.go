package schema

const ddl = `
CREATE TABLE IF NOT EXISTS projects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE,
	description TEXT,
	created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
	updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS tags (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL UNIQUE,
	color TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	duration   INTEGER NOT NULL DEFAULT 0 CHECK (duration >= 0),
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS timers (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	task       TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time   TEXT,
	status     TEXT NOT NULL DEFAULT 'running'
	           CHECK (status IN ('running','paused','stopped'))
);

CREATE TABLE IF NOT EXISTS time_entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	task       TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time   TEXT,
	tag_id     INTEGER REFERENCES tags(id) ON DELETE SET NULL,
	duration   INTEGER GENERATED ALWAYS AS
	           (CAST(strftime('%s', end_time) AS INTEGER) - CAST(strftime('%s', start_time) AS INTEGER)) VIRTUAL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_entries_project ON time_entries(project_id);
CREATE INDEX IF NOT EXISTS idx_entries_start   ON time_entries(start_time);

CREATE TABLE IF NOT EXISTS alerts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	type       TEXT NOT NULL,
	priority   TEXT NOT NULL,
	date       TEXT NOT NULL,
	resolved   INTEGER NOT NULL DEFAULT 0 CHECK (resolved IN (0,1))
);

CREATE TABLE IF NOT EXISTS reports (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	total_hours REAL NOT NULL DEFAULT 0 CHECK (total_hours >= 0),
	start_date  TEXT NOT NULL,
	end_date    TEXT NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
	updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS settings (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	key   TEXT NOT NULL UNIQUE,
	value TEXT NOT NULL
);
`

// DDL returns the idempotent CREATE statements for every registered
// table. time_entries.duration is a virtual generated column, so the
// engine recomputes end-start on every read and rejects direct writes.
func DDL() string {
	return ddl
}
