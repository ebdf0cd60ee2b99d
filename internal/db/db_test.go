package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latestVersion = 3

func tableExists(t *testing.T, path, table string) bool {
	t.Helper()
	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()
	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n))
	return n == 1
}

func TestOpen_CreatesSchemaOnFirstConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.sqlite")

	d, err := Open(path)
	require.NoError(t, err)
	v, err := Version(d)
	require.NoError(t, err)
	assert.Equal(t, latestVersion, v)
	require.NoError(t, d.Close())

	for _, table := range []string{"contacts", "users", "settings"} {
		assert.True(t, tableExists(t, path, table), table)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.sqlite")
	for i := 0; i < 2; i++ {
		d, err := Open(path)
		require.NoError(t, err)
		var n int
		require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
		assert.Equal(t, latestVersion, n)
		require.NoError(t, d.Close())
	}
}

func TestMigrate_AppliesOnlyNewerVersions(t *testing.T) {
	d, err := Open("file:migrate_newer?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = d.Exec(`INSERT INTO contacts (name, job, location, contact) VALUES ('ANNA','COOK','PUNE','5551234567')`)
	require.NoError(t, err)
	_, err = d.Exec(`DROP TABLE settings`)
	require.NoError(t, err)
	_, err = d.Exec(`DELETE FROM schema_migrations WHERE version = ?`, latestVersion)
	require.NoError(t, err)

	require.NoError(t, Migrate(d))

	v, err := Version(d)
	require.NoError(t, err)
	assert.Equal(t, latestVersion, v)
	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&n))
	assert.Equal(t, 1, n, "earlier tables are left alone")
}

func TestMigrate_NilDB(t *testing.T) {
	require.Error(t, Migrate(nil))
}

func TestMigrations_SortedByVersion(t *testing.T) {
	migs, err := migrations()
	require.NoError(t, err)
	require.Len(t, migs, latestVersion)
	for i, m := range migs {
		assert.Equal(t, i+1, m.version)
	}
	assert.Equal(t, "create_users", migs[1].name)
	assert.Equal(t, "create_settings", migs[2].name)
}
