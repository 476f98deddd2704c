// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest opens a migrated PostgreSQL pool for repository tests.

Tests are skipped unless TEST_DATABASE_URL points at a disposable database.
Packages run concurrently against the same database, so callers isolate their
rows with fresh IDs and addresses instead of truncating tables.
*/
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/migration"
	"github.com/taibuivan/cookbook/internal/platform/postgres"
	"github.com/taibuivan/cookbook/pkg/uuid"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "TEST_DATABASE_URL"

// Open migrates the test database and returns a pool closed at test cleanup.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsPath(t), logger))

	pool, err := postgres.NewPool(context.Background(), dsn, postgres.PoolSettings{MaxConns: 4, MinConns: 1}, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Email returns an address no other test run has used.
func Email(prefix string) string {
	return prefix + "+" + uuid.New() + "@example.com"
}

// migrationsPath resolves data/migrations relative to this source file.
func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}

// SeedUser inserts a member account and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool, prefix string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users.account (id, email, role) VALUES ($1, $2, 'member')`,
		id, Email(prefix))
	require.NoError(t, err)
	return id
}

// SeedRecipe inserts a minimal valid recipe owned by ownerID and returns its ID.
func SeedRecipe(t *testing.T, pool *pgxpool.Pool, ownerID, title, category string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO core.recipe (id, title, description, preptime, cooktime, servings, difficulty, category, userid)
		VALUES ($1, $2, 'Seeded recipe', 5, 10, 2, 'Easy', $3, $4)`,
		id, title, category, ownerID)
	require.NoError(t, err)
	return id
}
