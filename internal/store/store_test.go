// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"brandstudio/internal/database"
	"brandstudio/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandstudio")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandstudio")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database, runs migrations and
// seeds reference data. If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := database.Seed(db, "demo@example.com"); err != nil {
		db.Close()
		t.Fatalf("failed to seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user; its profiles, posts and logs cascade
// away with it on cleanup.
func testUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()
	db.Exec("DELETE FROM users WHERE email = $1", email)

	u, err := NewUserStore(db).Ensure(email, "pw", "Test User", models.TierFree)
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })
	return u
}
