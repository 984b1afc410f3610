package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Driver names as registered with database/sql
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open connects to the configured driver. The memory driver has no SQL
// database and returns nil.
func Open(driver, databaseURL, sqlitePath string) (*sqlx.DB, error) {
	switch driver {
	case DriverMemory:
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		return nil, nil
	case DriverPostgres:
		return NewPostgres(databaseURL)
	case DriverSQLite, "":
		return NewSQLite(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// NewPostgres creates a new PostgreSQL connection pool
func NewPostgres(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverPostgres, databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := ping(db); err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

// NewSQLite opens the embedded database file, creating its directory if needed
func NewSQLite(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}

	// single writer
	db.SetMaxOpenConns(1)

	if err := ping(db); err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Msg("Opened SQLite database")
	return db, nil
}

func ping(db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Close closes the database connection
func Close(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Str("driver", db.DriverName()).Msg("Error closing database connection")
	} else {
		log.Info().Str("driver", db.DriverName()).Msg("Database connection closed")
	}
}
