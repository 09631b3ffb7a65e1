// Package testutil provides fresh stores for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/anonto42/warbler/backend/internal/database"
	"github.com/anonto42/warbler/backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DatabaseURL returns the URL of a private in-memory SQLite database with
// foreign keys enforced.
func DatabaseURL() string {
	return fmt.Sprintf("%sfile:%s?mode=memory&cache=shared&_foreign_keys=1", config.SQLitePrefix, uuid.NewString())
}

// NewDB opens a private database with a freshly reset schema. It is closed
// when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase(DatabaseURL())
	require.NoError(t, err)
	require.NoError(t, database.Reset(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
