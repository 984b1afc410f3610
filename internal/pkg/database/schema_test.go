package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteForDialect(t *testing.T) {
	stmt := tables[1]

	assert.Equal(t, stmt, rewriteForDialect(DriverPostgres, stmt))

	sqlite := rewriteForDialect(DriverSQLite, stmt)
	assert.Contains(t, sqlite, "id TEXT PRIMARY KEY")
	assert.Contains(t, sqlite, "created_at DATETIME")
	assert.False(t, strings.Contains(sqlite, "TIMESTAMPTZ"))
}

func TestEnsureSchemaOnSQLite(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "petshop.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))
	// idempotent
	require.NoError(t, EnsureSchema(ctx, db))

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM gallery_images WHERE mirror_attempts = 0`))
	assert.Equal(t, 0, n)
}

func TestOpenMemory(t *testing.T) {
	db, err := Open(DriverMemory, "", "")
	require.NoError(t, err)
	assert.Nil(t, db)

	_, err = Open("oracle", "", "")
	assert.Error(t, err)
}
