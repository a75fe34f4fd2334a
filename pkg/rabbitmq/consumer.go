package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ConsumerConfig holds configuration for setting up a consumer.
type ConsumerConfig struct {
	QueueName    string
	DLQName      string
	RoutingKeys  []string
	ConsumerName string
}

// MessageHandler processes a delivered message.
// Return nil to ack, return error to nack (dead-lettered).
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// Acknowledger is the subset of amqp.Delivery used to settle a message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// SetupConsumer declares queues (main + DLQ), binds them, and consumes
// until ctx is cancelled. The returned channel closes when the delivery
// loop exits.
func SetupConsumer(ctx context.Context, conn *Connection, cfg ConsumerConfig, handler MessageHandler) (<-chan struct{}, error) {
	log := conn.log.Named(cfg.ConsumerName)

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := declareExchange(ch); err != nil {
		return nil, err
	}

	// Declare DLQ
	_, err = ch.QueueDeclare(
		cfg.DLQName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	// Declare main queue with DLQ settings
	args := amqp.Table{
		"x-dead-letter-exchange":    "",          // default exchange
		"x-dead-letter-routing-key": cfg.DLQName, // route to DLQ
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		args,
	)
	if err != nil {
		return nil, err
	}

	for _, key := range cfg.RoutingKeys {
		if err := ch.QueueBind(cfg.QueueName, key, ExchangeName, false, nil); err != nil {
			return nil, err
		}
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return nil, err
	}

	msgs, err := ch.Consume(
		cfg.QueueName,
		cfg.ConsumerName,
		false, // auto-ack = false (manual ack)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				log.Info("Consumer stopping")
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Warn("Delivery channel closed")
					return
				}
				Dispatch(ctx, log, handler, msg, msg)
			}
		}
	}()

	log.Info("Consumer started", zap.String("queue", cfg.QueueName), zap.Strings("routing_keys", cfg.RoutingKeys))
	return done, nil
}

// Dispatch runs handler on msg and settles it through ack: ack on success,
// nack without requeue (so the broker dead-letters it) on failure.
func Dispatch(ctx context.Context, log *zap.Logger, handler MessageHandler, msg amqp.Delivery, ack Acknowledger) {
	log.Debug("Received message",
		zap.String("routing_key", msg.RoutingKey),
		zap.String("correlation_id", msg.CorrelationId))

	if err := handler(ctx, msg); err != nil {
		log.Error("Error processing message, sending to DLQ",
			zap.Error(err),
			zap.String("routing_key", msg.RoutingKey),
			zap.String("correlation_id", msg.CorrelationId))
		_ = ack.Nack(false, false)
		return
	}
	_ = ack.Ack(false)
}
