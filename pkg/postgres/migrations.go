package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// RunMigrations executes the schema statements a service needs.
func RunMigrations(ctx context.Context, db *sql.DB, service string, log *zap.Logger) error {
	for i, m := range getServiceMigrations(service) {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d for %s: %w", i, service, err)
		}
	}
	log.Info("Migrations completed", zap.String("service", service))
	return nil
}

const idempotencyKeysTable = `CREATE TABLE IF NOT EXISTS idempotency_keys (
	message_id VARCHAR(36) PRIMARY KEY,
	processed_at TIMESTAMP NOT NULL DEFAULT NOW()
)`

func getServiceMigrations(service string) []string {
	common := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category VARCHAR(64) NOT NULL,
			price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			date VARCHAR(64) NOT NULL DEFAULT '',
			location VARCHAR(255) NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			created_by VARCHAR(36) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS events_category_idx ON events (category)`,
	}

	switch service {
	case "api":
		return common
	case "audit":
		return []string{
			idempotencyKeysTable,
			`CREATE TABLE IF NOT EXISTS event_audit_log (
				id SERIAL PRIMARY KEY,
				message_id VARCHAR(36) NOT NULL,
				correlation_id VARCHAR(64),
				change_type VARCHAR(50) NOT NULL,
				event_id VARCHAR(36) NOT NULL,
				event_title VARCHAR(255),
				event_category VARCHAR(64),
				actor_id VARCHAR(36),
				recorded_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		}
	case "analytics":
		return []string{
			idempotencyKeysTable,
			`CREATE TABLE IF NOT EXISTS analytics_metrics (
				id SERIAL PRIMARY KEY,
				metric_date DATE NOT NULL,
				category VARCHAR(64) NOT NULL,
				change_type VARCHAR(50) NOT NULL,
				count INTEGER NOT NULL DEFAULT 0,
				UNIQUE(metric_date, category, change_type)
			)`,
		}
	default:
		return common
	}
}
