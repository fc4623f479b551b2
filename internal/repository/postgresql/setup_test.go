package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection used by repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. ok is false when the variable is unset so
// callers can skip instead of failing on machines without Postgres.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4, MinConns: 1})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return nil, true, err
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// applySchema runs the init migration; every statement in it is IF NOT EXISTS.
func applySchema(ctx context.Context, db *database.DB) error {
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "000001_init_shift_schema.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// TruncateAllTables empties every table the repositories touch.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"overtime_records",
		"schedule_assignments",
		"shift_time_configs",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// SeedEmployee inserts a directory row.
func (t *TestDatabaseSetup) SeedEmployee(ctx context.Context, id, name, position string, active bool) error {
	_, err := t.DB.Exec(ctx,
		`INSERT INTO employees (id, full_name, position, is_active) VALUES ($1, $2, $3, $4)`,
		id, name, position, active,
	)
	return err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
