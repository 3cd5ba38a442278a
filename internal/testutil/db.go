package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/labelpick/internal/database"
)

// SetupTestDB creates an in-memory database with full schema and no rows
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupSeededDB creates an in-memory database loaded with database.DefaultSeed
func SetupSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	db := SetupTestDB(t)
	if err := database.ApplySeed(context.Background(), db, []byte(database.DefaultSeed)); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
	return db
}

// LabelIDs looks up label ids by name, failing the test on unknown names
func LabelIDs(t *testing.T, db *sql.DB, names ...string) []int {
	t.Helper()
	labels, err := database.GetAllLabels(context.Background(), db)
	if err != nil {
		t.Fatalf("Failed to list labels: %v", err)
	}
	byName := make(map[string]int, len(labels))
	for _, l := range labels {
		byName[l.Name] = l.ID
	}
	ids := make([]int, 0, len(names))
	for _, n := range names {
		id, ok := byName[n]
		if !ok {
			t.Fatalf("no label named %q", n)
		}
		ids = append(ids, id)
	}
	return ids
}
