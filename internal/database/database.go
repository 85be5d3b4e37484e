package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// Username uniqueness is enforced case-insensitively at the schema
// level so two concurrent registrations of "Alice" and "alice" cannot
// both succeed.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT NOT NULL PRIMARY KEY,
		author TEXT NOT NULL,
		text TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'General',
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS replies (
		id TEXT NOT NULL PRIMARY KEY,
		question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		author TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_replies_question ON replies(question_id, created_at);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		actor TEXT NOT NULL,
		subject_id TEXT,
		created_at TIMESTAMP NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
