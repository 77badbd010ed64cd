// Package testutil provides utilities for testing.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite" // SQLite driver
)

// TestDB wraps a test database connection.
type TestDB struct {
	*sql.DB
}

// NewTestDB creates a new in-memory SQLite database for testing.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Each pooled connection to :memory: would be a separate empty database.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	return &TestDB{DB: db}
}

// RunMigrations executes SQL migration files in order.
// Only executes the "Up" portion of each migration (before "-- +migrate Down").
func (tdb *TestDB) RunMigrations(t *testing.T, migrationsDir string) {
	t.Helper()

	// Read all .sql files from migrations directory
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("failed to read migrations directory: %v", err)
	}

	ctx := context.Background()

	// Files are applied one at a time in directory order.
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".sql" {
			continue
		}

		sqlPath := filepath.Join(migrationsDir, file.Name())
		sqlBytes, err := os.ReadFile(sqlPath)
		if err != nil {
			t.Fatalf("failed to read migration %s: %v", file.Name(), err)
		}

		// Extract only the "Up" portion (before "-- +migrate Down")
		sqlStr := string(sqlBytes)
		if idx := strings.Index(sqlStr, "-- +migrate Down"); idx >= 0 {
			sqlStr = sqlStr[:idx]
		}

		if _, err := tdb.ExecContext(ctx, sqlStr); err != nil {
			t.Fatalf("failed to execute migration %s: %v", file.Name(), err)
		}
	}
}

// Close closes the test database.
func (tdb *TestDB) Close(t *testing.T) {
	t.Helper()

	if err := tdb.DB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// AssertRowCount asserts the row count for a table.
func (tdb *TestDB) AssertRowCount(t *testing.T, table string, expected int) {
	t.Helper()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := tdb.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}

	if count != expected {
		t.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
}

// ExecSQL executes arbitrary SQL (useful for test setup).
func (tdb *TestDB) ExecSQL(t *testing.T, sql string, args ...any) {
	t.Helper()

	if _, err := tdb.Exec(sql, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}
