package test_utils

import (
	"database/sql"
	"testing"

	"github.com/kampung/agustusan/internal/database"
)

// NewSQLiteDB opens an isolated in-memory SQLite database with the key-value
// schema applied. It is closed when the test finishes.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenSQLite(database.InMemory)
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
