package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/auth"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store/memory"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store/mongostore"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store/pgstore"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/config"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/mongodb"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/postgres"
)

type stores struct {
	Events store.EventStore
	Users  store.UserStore
	close  func()
}

func (s stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// openStores connects the backend named by cfg.StoreDriver.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return stores{}, err
		}
		if err := postgres.RunMigrations(ctx, db, "api", log); err != nil {
			db.Close()
			return stores{}, err
		}
		return stores{
			Events: pgstore.NewEventStore(db),
			Users:  pgstore.NewUserStore(db),
			close:  func() { db.Close() },
		}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI, log)
		if err != nil {
			return stores{}, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return stores{}, err
		}
		return stores{
			Events: mongostore.NewEventStore(db.Collection(mongodb.EventsCollection)),
			Users:  mongostore.NewUserStore(db.Collection(mongodb.UsersCollection)),
			close:  func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		st := memory.NewSeededStore()
		return stores{Events: st, Users: st}, nil

	default:
		return stores{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// openSessions returns Redis-backed sessions, or in-process ones for the
// memory driver.
func openSessions(ctx context.Context, cfg *config.Config, log *zap.Logger) (auth.SessionStore, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		return auth.NewMemorySessionStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("Connected to Redis")
	return auth.NewRedisSessionStore(client), func() { client.Close() }, nil
}
