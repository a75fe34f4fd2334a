package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	connectAttempts = 30
	connectBackoff  = 2 * time.Second
)

// Connect establishes a connection to PostgreSQL with retries.
func Connect(ctx context.Context, databaseURL string, log *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < connectAttempts; i++ {
		db, err = sql.Open("postgres", databaseURL)
		if err != nil {
			log.Warn("Failed to open database, retrying", zap.Error(err), zap.Duration("backoff", connectBackoff))
			if !sleep(ctx, connectBackoff) {
				return nil, ctx.Err()
			}
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			log.Info("Connected to PostgreSQL")
			return db, nil
		}
		_ = db.Close()

		log.Warn("Failed to ping database, retrying", zap.Error(err), zap.Duration("backoff", connectBackoff))
		if !sleep(ctx, connectBackoff) {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
