package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"forum/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "forum.db"))
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
