package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDirForMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "showcase.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(dbPath, migrations))
	require.NoError(t, RunMigrations(dbPath, migrations), "second run is a no-op")

	require.NoError(t, SeedDefaults(context.Background(), db))
}

func TestSeedDefaultsReportsListError(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// no migrations: the promotions table does not exist
	err = SeedDefaults(context.Background(), db)
	require.ErrorContains(t, err, "list promotions")
}
