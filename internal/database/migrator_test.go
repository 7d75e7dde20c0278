package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-backend/migrations"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_totp.sql":        {Data: []byte("ALTER TABLE managers ADD COLUMN x INT;")},
		"001_init.sql":        {Data: []byte("CREATE TABLE a (id INT);")},
		"999_reset_all.sql":   {Data: []byte("DROP TABLE a;")},
		"README.md":           {Data: []byte("notes")},
		"archive/000_old.sql": {Data: []byte("SELECT 1;")},
	}

	files, err := PendingMigrations(fsys, ".", map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_totp.sql"}, files)

	files, err = PendingMigrations(fsys, ".", map[string]bool{"001_init.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"002_totp.sql"}, files)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := PendingMigrations(migrations.FS, ".", nil)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init_schema.sql", files[0])
}
