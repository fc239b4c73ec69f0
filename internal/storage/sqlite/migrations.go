package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// The unique index on tasks(user_id, task_date, content) backs merge-mode
// bulk projection: INSERT OR IGNORE leans on it to skip duplicates, so
// concurrent projections cannot double-insert.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    task_date TEXT NOT NULL,
    content TEXT NOT NULL,
    is_completed INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    goal_month TEXT NOT NULL,
    content TEXT NOT NULL,
    is_completed INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_owner_date_content
    ON tasks(user_id, task_date, content);

CREATE INDEX IF NOT EXISTS idx_tasks_owner_date ON tasks(user_id, task_date);
CREATE INDEX IF NOT EXISTS idx_goals_owner_month ON goals(user_id, goal_month);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
