package database

import (
	"io/fs"
	"strings"
	"testing"

	"masjidku_portal/internals/helpers/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAutoMigrate_AllModels(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, AutoMigrate(db))

	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		assert.True(t, db.Migrator().HasTable(stmt.Schema.Table), stmt.Schema.Table)
	}
}

func TestMigrationFiles_CoverEveryTable(t *testing.T) {
	up, err := fs.ReadFile(migrationFiles, "migrations/0001_init.up.sql")
	require.NoError(t, err)
	down, err := fs.ReadFile(migrationFiles, "migrations/0001_init.down.sql")
	require.NoError(t, err)

	db := testdb.Open(t)
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		table := stmt.Schema.Table
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
		assert.True(t, strings.Contains(string(down), "DROP TABLE IF EXISTS "+table+";"), table)
	}
}
