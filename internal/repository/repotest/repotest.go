// Package repotest opens a migrated, private SQLite store for tests.
package repotest

import (
	"io"
	"testing"

	"go-inventory-billing/internal/config"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/pkg/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Open returns a Store over a fresh in-memory SQLite database and the
// underlying handle for direct setup. The database is closed when t ends.
func Open(t testing.TB) (repository.Store, *gorm.DB) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", URL: database.SQLiteMemory}, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewStore(db), db
}
