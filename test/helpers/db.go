// Package helpers provides shared setup for integration tests.
package helpers

import (
	"fmt"
	"os"
	"testing"

	"creatordna_backend/database"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB connects to the database named by TEST_DATABASE_URL (or
// DATABASE_URL) and migrates the schema. Tests are skipped when neither
// is set so the suite stays runnable without infrastructure.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// UniqueEmail returns a collision-free email for test fixtures.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@test.local", prefix, uuid.NewString()[:8])
}

// CleanupTables truncates the given tables after a test.
func CleanupTables(t *testing.T, db *gorm.DB, tables ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, table := range tables {
			db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		}
	})
}
