// Package database opens throwaway sqlite databases with the production
// schema for tests.
package database

import (
	"fmt"
	"testing"

	"github.com/amirasaad/bankapi/infra"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite" // Sqlite driver based on CGO
	"gorm.io/gorm"
)

// OpenInMemory opens a private in-memory sqlite database and migrates it.
// The pool is limited to one connection so that every session sees the same
// memory database and transactions serialize like row locks would.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	connection, err := gorm.Open(sqlite.Open(dsn), infra.GormConfig("test"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := infra.Migrate(connection); err != nil {
		return nil, err
	}
	return connection, nil
}

// New returns a migrated in-memory database that is closed when tb ends.
func New(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := OpenInMemory()
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
