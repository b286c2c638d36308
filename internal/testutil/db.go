// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"testing"

	"snsapi/internal/config"
	"snsapi/internal/database"

	"gorm.io/gorm"
)

// NewDB returns a fresh in-memory SQLite database with the embedded
// migrations applied. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBPath:       ":memory:",
		DBSchemaMode: database.SchemaModeSQL,
	}
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.ApplySchema(context.Background(), db, cfg); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
