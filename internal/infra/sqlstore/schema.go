package sqlstore

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`
	CREATE TABLE projects (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL UNIQUE
	);

	CREATE TABLE people (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL,
		email    TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		company  TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE tasks (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id      INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id       INTEGER REFERENCES tasks(id) ON DELETE CASCADE,
		assigned_to     INTEGER REFERENCES people(id) ON DELETE SET NULL,
		name            TEXT NOT NULL,
		start_date      TEXT,
		deadline        TEXT,
		actual_end_date TEXT,
		priority        INTEGER NOT NULL DEFAULT 0,
		progress        INTEGER NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100)
	);

	CREATE INDEX idx_tasks_project ON tasks(project_id);
	CREATE INDEX idx_tasks_parent ON tasks(parent_id);
	`,
	`
	CREATE TABLE project_members (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		person_id  INTEGER NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		UNIQUE (project_id, person_id)
	);
	`,
}

// migrate brings the schema up to date.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
