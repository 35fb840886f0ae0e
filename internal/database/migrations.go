package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate declares.
// Runs at boot right after AutoMigrate and is idempotent per driver.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Project indexes for workspace-scoped listing and ownership checks
		{"projects", "idx_projects_workspace_id", "workspace_id"},
		{"projects", "idx_projects_owner_id", "owner_id"},
		{"projects", "idx_projects_status", "status"},
		{"projects", "idx_projects_created_at", "created_at"},

		// Member indexes for the membership gate in both directions
		{"members", "idx_members_workspace_id", "workspace_id"},
		{"members", "idx_members_user_id", "user_id"},

		// Join flow resolves the workspace first, then compares the code;
		// the index only serves admin tooling
		{"workspaces", "idx_workspaces_invite_code", "invite_code"},
	}

	for _, idx := range indexes {
		exists, err := indexExists(db, idx.table, idx.name)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if exists {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// indexExists consults the driver's catalog, since CREATE INDEX IF NOT EXISTS
// is not portable across the supported drivers.
func indexExists(db *gorm.DB, table, name string) (bool, error) {
	var count int64
	var err error

	switch db.Dialector.Name() {
	case "postgres":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, table, name).Scan(&count).Error
	case "mysql":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, table, name).Scan(&count).Error
	case "sqlite":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM sqlite_master
			WHERE type = 'index' AND tbl_name = ? AND name = ?
		`, table, name).Scan(&count).Error
	default:
		return false, fmt.Errorf("unsupported dialect %q", db.Dialector.Name())
	}

	if err != nil {
		return false, err
	}
	return count > 0, nil
}
