package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Kerhoff/NutriboT/internal/config"
	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/pkg/logger"
)

// newTestDB returns a migrated in-memory SQLite database private to the test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := config.NewDatabase(config.DriverSQLite, ":memory:", logger.Discard())
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db.DB
}

func mustCreateFoods(t *testing.T, repo interface {
	Create(context.Context, *models.Food) error
}, foods ...models.Food) {
	t.Helper()
	for i := range foods {
		if err := repo.Create(context.Background(), &foods[i]); err != nil {
			t.Fatalf("failed to create food %d: %v", foods[i].ID, err)
		}
	}
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func foodIDs(foods []*models.Food) []int64 {
	ids := make([]int64, 0, len(foods))
	for _, f := range foods {
		ids = append(ids, f.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
