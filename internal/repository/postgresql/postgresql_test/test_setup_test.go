package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup wraps the connection used by the repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when the
// variable is unset, so callers can skip instead of failing.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if _, err := db.Exec(ctx, postgresql.Schema); err != nil {
		db.Close()
		return nil, true, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// TruncateAllTables empties every table the repositories write to.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{"attendance_records"}

	for _, table := range tables {
		if _, err := t.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
