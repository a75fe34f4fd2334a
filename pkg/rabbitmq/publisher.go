package rabbitmq

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeName is the topic exchange every event change is published to.
const ExchangeName = "event-changes"

const publishTimeout = 10 * time.Second

// Publisher publishes messages to the change exchange.
// AMQP channels are not safe for concurrent publishing, so Publish
// serialises callers.
type Publisher struct {
	mu      sync.Mutex
	channel *amqp.Channel
	log     *zap.Logger
}

// NewPublisher creates a new publisher and declares the topic exchange.
func NewPublisher(conn *Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := declareExchange(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Publisher{channel: ch, log: conn.log.Named("publisher")}, nil
}

// Publish sends a persistent JSON message with the given routing key.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte, correlationID string) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.log.Debug("Publishing message",
		zap.String("routing_key", routingKey),
		zap.String("correlation_id", correlationID))

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
		},
	)
}

// Close closes the publisher channel.
func (p *Publisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
