package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/api"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/auth"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/config"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/logger"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/rabbitmq"

	_ "github.com/ApexArbiter/SmitFinalHachkthon/docs"
)

// @title           Event Discovery API
// @version         1.0
// @description     Browse, search and manage events. Every write is published to RabbitMQ for the audit and analytics consumers.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck
	log = log.Named("api")
	log.Info("Starting api-service", zap.String("store_driver", cfg.StoreDriver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close()

	sessions, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	// The in-memory driver runs without a broker.
	var publisher api.EventPublisher
	if cfg.StoreDriver != config.DriverMemory {
		rmqConn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer rmqConn.Close()

		pub, err := rabbitmq.NewPublisher(rmqConn)
		if err != nil {
			log.Fatal("Failed to create publisher", zap.Error(err))
		}
		defer pub.Close()
		publisher = pub
	} else {
		log.Warn("Memory driver: event changes are not published")
	}

	svc := auth.NewService(st.Users, sessions, auth.NewTokenIssuer(cfg.JWTSecret), cfg.SessionTTL, log.Named("auth"))
	router := api.NewRouter(
		api.NewEventHandler(st.Events, publisher, log),
		api.NewAuthHandler(svc, log),
		log,
	)

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewHandler(router, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}
