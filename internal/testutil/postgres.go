// README: Shared helpers for tests that need a live Postgres.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"ecoroute/internal/infra"
)

// Postgres connects to ECO_TEST_DSN, applies migrations and truncates the
// given tables. The test is skipped when ECO_TEST_DSN is not set.
func Postgres(t *testing.T, tables ...string) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("ECO_TEST_DSN")
	if dsn == "" {
		t.Skip("ECO_TEST_DSN not set; skipping DB-backed tests")
	}
	return PostgresDSN(t, dsn, tables...)
}

// PostgresDSN is Postgres for an explicit DSN, used by container-backed tests.
func PostgresDSN(t *testing.T, dsn string, tables ...string) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	db, err := infra.NewDB(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	root, err := infra.RepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	if err := infra.ApplyMigrations(ctx, db, filepath.Join(root, "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if len(tables) > 0 {
		if _, err := db.Exec(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")); err != nil {
			t.Fatalf("truncate tables: %v", err)
		}
	}
	return db
}
