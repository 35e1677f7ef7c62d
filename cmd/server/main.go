package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftship/courier-portal/internal/api"
	"github.com/swiftship/courier-portal/internal/infrastructure/config"
	mongoinfra "github.com/swiftship/courier-portal/internal/infrastructure/db/mongo"
	redisinfra "github.com/swiftship/courier-portal/internal/infrastructure/db/redis"
	"github.com/swiftship/courier-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// main is the application composition root. It wires MongoDB and Redis behind
// the repository ports, builds the router, and runs the HTTP server until a
// termination signal arrives.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "courier-portal",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	e, dispatcher, err := api.NewRouter(db, rdb, api.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		EventWorkers: cfg.EventWorkers,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// ensureIndexes creates the indexes the lookup and list queries depend on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongoinfra.NewConsignmentRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongoinfra.NewPartnerRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongoinfra.NewAuthRepository(db).EnsureIndexes(ctx)
}
