package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		code             TEXT NOT NULL,
		client_id        TEXT NOT NULL DEFAULT '',
		template_id      TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'planning'
		                 CHECK(status IN ('planning','in_progress','on_hold','completed','cancelled')),
		start_date       TEXT NOT NULL,
		end_date         TEXT,
		manager_id       TEXT NOT NULL DEFAULT '',
		budget           REAL,
		currency         TEXT NOT NULL DEFAULT 'USD',
		active_sprint_id TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_template ON projects(template_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL DEFAULT 0,
		name            TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'todo'
		                CHECK(status IN ('todo','in_progress','review','done')),
		type            TEXT NOT NULL DEFAULT 'feature',
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('low','medium','high','critical')),
		assignee_id     TEXT NOT NULL DEFAULT '',
		leader_id       TEXT NOT NULL DEFAULT '',
		start_date      TEXT,
		due_date        TEXT,
		estimated_hours REAL,
		logged_hours    REAL NOT NULL DEFAULT 0,
		story_points    REAL,
		billable        INTEGER NOT NULL DEFAULT 1,
		sprint_id       TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS task_dependencies (
		task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (task_id, depends_on_id)
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL DEFAULT 0,
		title      TEXT NOT NULL,
		due_date   TEXT NOT NULL,
		completed  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL DEFAULT 0,
		name             TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'planning'
		                 CHECK(status IN ('planning','active','completed')),
		start_date       TEXT NOT NULL,
		end_date         TEXT NOT NULL,
		committed_points REAL NOT NULL DEFAULT 0,
		completed_points REAL NOT NULL DEFAULT 0,
		focus_areas      TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sprints_project ON sprints(project_id)`,

	`CREATE TABLE IF NOT EXISTS task_notifications (
		id                    TEXT PRIMARY KEY,
		project_id            TEXT NOT NULL,
		project_name          TEXT NOT NULL,
		task_id               TEXT NOT NULL,
		task_name             TEXT NOT NULL,
		type                  TEXT NOT NULL
		                      CHECK(type IN ('start_confirmation','auto_started')),
		message               TEXT NOT NULL,
		triggered_at          TEXT NOT NULL,
		requires_confirmation INTEGER NOT NULL DEFAULT 0,
		allow_start_date_edit INTEGER NOT NULL DEFAULT 1,
		suggested_start_date  TEXT NOT NULL,
		seq                   INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_project ON task_notifications(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_seq ON task_notifications(seq)`,
}
