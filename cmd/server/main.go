package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kolecta/collection-system/internal/api"
	"github.com/kolecta/collection-system/internal/infrastructure/config"
	mongodb "github.com/kolecta/collection-system/internal/infrastructure/db/mongo"
	redisdb "github.com/kolecta/collection-system/internal/infrastructure/db/redis"
	"github.com/kolecta/collection-system/pkg/logger"
)

func main() {
	loadLocalEnv()

	cfg := config.Load()

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("account index creation failed")
	}
	if err := mongodb.NewCollectionRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("collection index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(cfg, db, rdb)

	go func() {
		logg.Info().Str("port", cfg.Port).Msg("collection console listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown error")
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
