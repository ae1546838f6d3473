package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Submission indexes for the pending/approved listings and per-user views
		{"submissions", "idx_submissions_user_id", "user_id"},
		{"submissions", "idx_submissions_approved", "approved"},
		{"submissions", "idx_submissions_created_at", "created_at"},

		// Username lookup at login
		{"users", "idx_users_username", "username"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
