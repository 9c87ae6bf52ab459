package database

import (
	"strings"

	"foodshare-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN keeps the whole board in process memory; it is lost on restart.
const MemoryDSN = ":memory:"

// Open opens a GORM DB from DSN. Postgres URLs go through the pgx driver;
// anything else is a SQLite path, with "" meaning in-memory.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if isPostgres(dsn) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}
	// Every new connection to :memory: is a fresh empty database.
	if dsn == MemoryDSN {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// AutoMigrate creates the board tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Org{}, &domain.User{}, &domain.Listing{}, &domain.ListingEvent{})
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
