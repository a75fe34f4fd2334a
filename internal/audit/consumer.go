// Package audit records every event change in an append-only log.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

// Consumer writes event changes to event_audit_log.
type Consumer struct {
	DB  *sql.DB
	Log *zap.Logger
}

// NewConsumer creates a new audit consumer.
func NewConsumer(db *sql.DB, log *zap.Logger) *Consumer {
	return &Consumer{DB: db, Log: log}
}

// HandleMessage records one event change. The log row and the idempotency
// key commit together, so a redelivered message is never logged twice.
func (c *Consumer) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	var change models.EventChange
	if err := json.Unmarshal(delivery.Body, &change); err != nil {
		c.Log.Error("Failed to unmarshal change", zap.Error(err), zap.String("correlation_id", delivery.CorrelationId))
		return err
	}
	if change.MessageID == "" {
		return fmt.Errorf("change without message id")
	}

	log := c.Log.With(
		zap.String("message_id", change.MessageID),
		zap.String("correlation_id", change.CorrelationID),
		zap.String("change_type", string(change.ChangeType)),
		zap.String("event_id", change.Data.ID))

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
		`INSERT INTO event_audit_log (message_id, correlation_id, change_type, event_id, event_title, event_category, actor_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		change.MessageID, change.CorrelationID, string(change.ChangeType),
		change.Data.ID, change.Data.Title, change.Data.Category, change.ActorID,
	)
	if err != nil {
		log.Error("Error writing audit log", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Error committing audit entry", zap.Error(err))
		return err
	}

	log.Info("Change audited", zap.String("actor_id", change.ActorID))
	return nil
}
