package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate_CreatesIndexes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, Migrate())

	for name, table := range map[string]string{
		"idx_projects_workspace_id":  "projects",
		"idx_projects_owner_id":      "projects",
		"idx_projects_status":        "projects",
		"idx_projects_created_at":    "projects",
		"idx_members_workspace_id":   "members",
		"idx_members_user_id":        "members",
		"idx_workspaces_invite_code": "workspaces",
	} {
		exists, err := indexExists(db, table, name)
		require.NoError(t, err)
		require.True(t, exists, "index %s missing after Migrate", name)
	}

	// Running migrations again must not fail on already-present indexes
	require.NoError(t, Migrate())
}
