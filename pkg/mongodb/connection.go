package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	EventsCollection = "events"
	UsersCollection  = "users"
)

const (
	connectAttempts = 30
	connectBackoff  = 2 * time.Second
)

// Connect establishes a connection to MongoDB with retries.
func Connect(ctx context.Context, uri string, log *zap.Logger) (*mongo.Client, error) {
	var lastErr error

	for i := 0; i < connectAttempts; i++ {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				log.Info("Connected to MongoDB")
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}
		lastErr = err

		log.Warn("Failed to reach MongoDB, retrying", zap.Error(err), zap.Duration("backoff", connectBackoff))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", connectAttempts, lastErr)
}

// EnsureIndexes creates the indexes the stores rely on. Safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	_, err = db.Collection(EventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("events category index: %w", err)
	}
	return nil
}
