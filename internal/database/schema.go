package database

import (
	"fmt"

	"github.com/anonto42/warbler/backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table in dependency order: parents before children.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	}
}

// Migrate creates any missing tables, columns and indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DropAll drops every table, children first.
func DropAll(db *gorm.DB) error {
	all := Models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

// Reset drops and recreates the schema in a single transaction, so data is
// cleared and identifiers restart from one. Nothing observes a half-reset store.
func Reset(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := DropAll(tx); err != nil {
			return err
		}
		return Migrate(tx)
	})
}
