package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/analytics"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/config"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/logger"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/postgres"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/rabbitmq"
)

func main() {
	cfg := config.LoadForService("ANALYTICS")

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck
	log = log.Named("analytics")
	log.Info("Starting analytics-consumer...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, "analytics", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, log)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmqConn.Close()

	consumer := analytics.NewConsumer(db, log)

	consumerCfg := rabbitmq.ConsumerConfig{
		QueueName:    "analytics.event.changes",
		DLQName:      "dlq.analytics.event.changes",
		RoutingKeys:  models.RoutingKeys(),
		ConsumerName: "analytics-consumer",
	}

	done, err := rabbitmq.SetupConsumer(ctx, rmqConn, consumerCfg, consumer.HandleMessage)
	if err != nil {
		log.Fatal("Failed to setup consumer", zap.Error(err))
	}

	log.Info("Consumer is running. Waiting for messages...")

	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
		<-done
	case <-done:
		log.Error("Consumer stopped unexpectedly")
	}
}
