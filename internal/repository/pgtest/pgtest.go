// Package pgtest opens a migrated, empty Postgres database for repository tests.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"handcrafted-haven/internal/migrate"
)

// Pool connects to TEST_DB_DSN, applies migrations and truncates every table.
// The test is skipped when TEST_DB_DSN is unset or unreachable.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database unreachable: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE reviews, order_items, orders, cart_lines, carts, products, seller_profiles, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}

// User inserts a user row and returns its id.
func User(t *testing.T, pool *pgxpool.Pool, email, role string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, password_hash, name, role) VALUES ($1, 'x', $1, $2) RETURNING id::text`,
		email, role,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}
