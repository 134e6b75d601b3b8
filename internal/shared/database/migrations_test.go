package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql":         {Data: []byte("CREATE INDEX ...")},
		"001_create_runs.sql":       {Data: []byte("CREATE TABLE ...")},
		"README.md":                 {Data: []byte("notes")},
		"archive/000_bootstrap.sql": {Data: []byte("SELECT 1")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	require.Equal(t, []string{"001_create_runs.sql", "002_add_index.sql", "archive/000_bootstrap.sql"}, files)
}

func TestStatusOfDisabledDatabase(t *testing.T) {
	var db *DB
	require.Equal(t, "disabled", db.Status(context.Background()))
	require.NoError(t, db.Close())
}
