package config

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLitePrefix marks a DATABASE_URL that should be opened with the SQLite driver.
const SQLitePrefix = "sqlite:"

// DB holds the database connection
type DB struct {
	Conn *gorm.DB
}

// InitDB opens the configured database and verifies the connection.
func InitDB(cfg *Config) (*DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := OpenDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if !IsSQLite(cfg.DatabaseURL) {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	log.Info("Successfully connected to the database!")
	return &DB{Conn: db}, nil
}

// OpenDatabase opens url with the PostgreSQL driver, or the SQLite driver when
// url carries the sqlite: prefix. Store errors are translated to gorm's
// sentinel errors such as gorm.ErrDuplicatedKey.
func OpenDatabase(url string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if IsSQLite(url) {
		dialector = sqlite.Open(strings.TrimPrefix(url, SQLitePrefix))
	} else {
		dialector = postgres.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if IsSQLite(url) {
		// A single connection keeps in-memory databases alive and avoids
		// SQLITE_BUSY between concurrent writers.
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func IsSQLite(url string) bool {
	return strings.HasPrefix(url, SQLitePrefix)
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Conn == nil {
		return
	}
	sqlDB, err := db.Conn.DB()
	if err != nil {
		log.Errorf("Error getting SQL DB from GORM: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Errorf("Error closing database connection: %v", err)
		return
	}
	log.Info("Database connection closed.")
}
