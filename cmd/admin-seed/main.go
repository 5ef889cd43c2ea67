// Command admin-seed creates the first admin so that the admin endpoints,
// which all require an existing admin signature, become usable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
	"github.com/guda/guda-backend/internal/core/service"
	"github.com/guda/guda-backend/internal/core/walletauth"
	"github.com/guda/guda-backend/internal/infrastructure/config"
	mongodb "github.com/guda/guda-backend/internal/infrastructure/db/mongo"
	"github.com/guda/guda-backend/internal/infrastructure/storage"
	"github.com/guda/guda-backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "admin-seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	wallet := flag.String("wallet", os.Getenv("ADMIN_WALLET_ADDRESS"), "admin wallet address")
	name := flag.String("name", os.Getenv("ADMIN_NAME"), "admin display name")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	upiID := flag.String("upi", os.Getenv("ADMIN_UPI_ID"), "admin UPI id")
	flag.Parse()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Service: "admin-seed",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "guda-admin-seed",
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	admins := mongodb.NewAdminRepository(db)
	users := mongodb.NewUserRepository(db)
	if err := mongodb.EnsureIndexes(ctx, admins, users); err != nil {
		return err
	}
	files, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		return err
	}

	gate := walletauth.NewGate(walletauth.NewResolver(admins, users), log)
	svc := service.NewAdminService(gate, admins, users, files, log)

	admin, err := svc.Seed(ctx, ports.RegisterAdminInput{
		WalletAddress: *wallet,
		Name:          *name,
		Email:         *email,
		UpiID:         *upiID,
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		log.Info().Str("wallet", *wallet).Msg("admin already exists")
		return nil
	case err != nil:
		return err
	}

	log.Info().Str("wallet", admin.WalletAddress).Str("id", admin.ID).Msg("admin created")
	return nil
}
