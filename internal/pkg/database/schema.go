package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// tables are written for PostgreSQL; rewriteForDialect adapts them for SQLite.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		service TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings (date)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		message TEXT NOT NULL,
		newsletter BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS gallery_images (
		id UUID PRIMARY KEY,
		url TEXT NOT NULL,
		thumbnail_url TEXT,
		storage_key TEXT,
		description TEXT NOT NULL,
		mirror_attempts INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		category TEXT NOT NULL,
		image_url TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
}

// EnsureSchema creates all tables that do not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, rewriteForDialect(db.DriverName(), stmt)); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func rewriteForDialect(driver, stmt string) string {
	if driver != DriverSQLite {
		return stmt
	}
	r := strings.NewReplacer(
		"UUID PRIMARY KEY", "TEXT PRIMARY KEY",
		"TIMESTAMPTZ", "DATETIME",
		"NUMERIC(10,2)", "REAL",
	)
	return r.Replace(stmt)
}
