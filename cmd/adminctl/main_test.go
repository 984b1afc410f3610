package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petgroom/petgroom-api/internal/pkg/database"
)

func TestCreateCheckList(t *testing.T) {
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, database.EnsureSchema(ctx, db))

	var out bytes.Buffer
	require.NoError(t, run(ctx, db, "create", []string{"-username", "ana", "-password", "pw-123456"}, &out))
	assert.Contains(t, out.String(), "Admin ana created")

	err = run(ctx, db, "create", []string{"-username", "ANA", "-password", "other"}, &out)
	assert.ErrorContains(t, err, "already exists")

	out.Reset()
	require.NoError(t, run(ctx, db, "check", []string{"-username", "ana", "-password", "pw-123456"}, &out))
	assert.Contains(t, out.String(), "verification result: true")

	out.Reset()
	require.NoError(t, run(ctx, db, "check", []string{"-username", "ana", "-password", "wrong"}, &out))
	assert.Contains(t, out.String(), "verification result: false")

	out.Reset()
	require.NoError(t, run(ctx, db, "list", nil, &out))
	assert.Contains(t, out.String(), "Total admins: 1")

	assert.Error(t, run(ctx, db, "drop", nil, &out))
}
