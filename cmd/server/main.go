// @title        Guda Backend API
// @version      1.0
// @description  Wallet-authenticated user, admin, transaction, contact and theme API.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/api"
	"github.com/guda/guda-backend/internal/core/ports"
	"github.com/guda/guda-backend/internal/core/service"
	"github.com/guda/guda-backend/internal/core/walletauth"
	"github.com/guda/guda-backend/internal/infrastructure/config"
	mongodb "github.com/guda/guda-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/guda/guda-backend/internal/infrastructure/db/redis"
	"github.com/guda/guda-backend/internal/infrastructure/encryption"
	apphttp "github.com/guda/guda-backend/internal/infrastructure/http"
	"github.com/guda/guda-backend/internal/infrastructure/storage"
	"github.com/guda/guda-backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "guda-backend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "guda-backend",
	})
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting API server")

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "guda-backend",
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	admins := mongodb.NewAdminRepository(db)
	users := mongodb.NewUserRepository(db)
	contacts := mongodb.NewContactRepository(db)
	themes := mongodb.NewThemeRepository(db)
	if err := mongodb.EnsureIndexes(ctx, admins, users, contacts); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	var idem ports.IdempotencyStore
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		idem = redisdb.NewIdempotencyStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis, idempotency keys enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, idempotency keys disabled")
	}

	files, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		return err
	}
	cipher, err := documentCipher(cfg.Uploads.DocumentKey, log)
	if err != nil {
		return err
	}

	gate := walletauth.NewGate(walletauth.NewResolver(admins, users), log.With().Str("component", "walletauth").Logger())

	router := api.NewRouter(api.Dependencies{
		Users:          service.NewUserService(gate, users, files, cipher, log),
		Transactions:   service.NewTransactionService(gate, users, idem, log),
		Contacts:       service.NewContactService(gate, contacts, log),
		Admins:         service.NewAdminService(gate, admins, users, files, log),
		Themes:         service.NewThemeService(gate, themes, log),
		Mongo:          db,
		Redis:          rdb,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		Logger:         log,
	})

	return apphttp.ServeAndWait(ctx, router, ":"+cfg.Port, cfg.ShutdownTimeout, log)
}

// documentCipher returns nil when no key is configured, which disables KYC
// document upload and download.
func documentCipher(key string, log zerolog.Logger) (ports.DocumentCipher, error) {
	if key == "" {
		log.Warn().Msg("DOCUMENT_ENCRYPTION_KEY not set, KYC documents disabled")
		return nil, nil
	}
	c, err := encryption.NewDocumentCipher(key)
	if err != nil {
		return nil, fmt.Errorf("document cipher: %w", err)
	}
	return c, nil
}
