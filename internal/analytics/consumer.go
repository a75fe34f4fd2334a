package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

const metricDateLayout = "2006-01-02"

// Consumer counts event changes per day, category and change type.
type Consumer struct {
	DB  *sql.DB
	Log *zap.Logger
}

// NewConsumer creates a new analytics consumer.
func NewConsumer(db *sql.DB, log *zap.Logger) *Consumer {
	return &Consumer{DB: db, Log: log}
}

// HandleMessage processes an event change for analytics.
func (c *Consumer) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	var change models.EventChange
	if err := json.Unmarshal(delivery.Body, &change); err != nil {
		c.Log.Error("Failed to unmarshal change", zap.Error(err), zap.String("correlation_id", delivery.CorrelationId))
		return err
	}

	log := c.Log.With(
		zap.String("message_id", change.MessageID),
		zap.String("correlation_id", change.CorrelationID),
		zap.String("change_type", string(change.ChangeType)))
	log.Debug("Processing change", zap.String("event_id", change.Data.ID))

	if change.MessageID == "" {
		return fmt.Errorf("change without message id")
	}

	metricDate := change.Timestamp.UTC().Format(metricDateLayout)
	category := change.Data.Category
	if category == "" {
		category = "Uncategorized"
	}

	// The key and the count commit together.
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Error("Error starting transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		"INSERT INTO idempotency_keys (message_id) VALUES ($1) ON CONFLICT DO NOTHING",
		change.MessageID)
	if err != nil {
		log.Error("Error recording idempotency key", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Info("Duplicate change ignored")
		return nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analytics_metrics (metric_date, category, change_type, count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (metric_date, category, change_type)
		 DO UPDATE SET count = analytics_metrics.count + 1`,
		metricDate, category, string(change.ChangeType),
	)
	if err != nil {
		log.Error("Error upserting metrics", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Error committing metrics", zap.Error(err))
		return err
	}

	log.Info("Metrics updated", zap.String("date", metricDate), zap.String("category", category))
	return nil
}
