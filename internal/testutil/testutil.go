package testutil

import (
	"strings"
	"testing"

	"exerciseTracker/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database with the schema applied.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *db.Store {
	t.Helper()
	// Shared cache so every pooled connection sees the same database.
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}
