package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func TestGetServiceMigrations_API(t *testing.T) {
	migrations := getServiceMigrations("api")
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations for api, got %d", len(migrations))
	}
	if !strings.Contains(migrations[1], "CREATE TABLE IF NOT EXISTS events") {
		t.Errorf("expected events table in api migrations")
	}
}

func TestGetServiceMigrations_Audit(t *testing.T) {
	migrations := getServiceMigrations("audit")
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations for audit, got %d", len(migrations))
	}
}

func TestGetServiceMigrations_Analytics(t *testing.T) {
	migrations := getServiceMigrations("analytics")
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations for analytics, got %d", len(migrations))
	}
}

func TestGetServiceMigrations_Default(t *testing.T) {
	migrations := getServiceMigrations("unknown")
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations for unknown (default), got %d", len(migrations))
	}
}

func TestRunMigrations_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS idempotency_keys").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analytics_metrics").
		WillReturnError(errors.New("permission denied"))

	err = RunMigrations(context.Background(), db, "analytics", zap.NewNop())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("expected wrapped driver error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
