package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AddIndexes creates the filtering and sorting indexes the list views depend on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Client list filtering and ordering
		{"clients", "idx_clients_user_id", "user_id"},
		{"clients", "idx_clients_name", "name"},

		// Project list filtering
		{"projects", "idx_projects_user_id", "user_id"},
		{"projects", "idx_projects_client_id", "client_id"},
		{"projects", "idx_projects_status", "status"},
		{"projects", "idx_projects_created_at", "created_at"},

		// Invoice list filtering and transitive ownership joins
		{"invoices", "idx_invoices_project_id", "project_id"},
		{"invoices", "idx_invoices_payment_status", "payment_status"},
		{"invoices", "idx_invoices_issue_date", "issue_date"},

		// Contact log lookups per client/project
		{"contact_logs", "idx_contact_logs_client_id", "client_id"},
		{"contact_logs", "idx_contact_logs_project_id", "project_id"},
		{"contact_logs", "idx_contact_logs_contacted_at", "contacted_at"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table)
	}

	return nil
}
