// Command authserver runs the reference authentication service the
// storefront signs in against.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/authserver"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	mongostore "github.com/99minutos/storefront/internal/infrastructure/db/mongo"
	"github.com/99minutos/storefront/internal/pkg/config"
	"github.com/99minutos/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadAuthServer()
	log := logger.Init(logger.Options{
		Service: "authserver",
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openAccounts(ctx, cfg, log)
	defer closeRepo()

	svc := authserver.NewService(repo, cfg.JWTSecret, cfg.TokenTTL)

	if cfg.AdminUsername != "" {
		admin, err := svc.Provision(ctx, domain.Signup{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		}, domain.RoleAdmin)
		if err != nil {
			log.Fatal().Err(err).Str("username", cfg.AdminUsername).Msg("provision admin")
		}
		log.Info().Str("username", admin.Username).Str("role", admin.Role.String()).Msg("admin account ready")
	}

	e := authserver.NewRouter(svc, logger.Component("http"))

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("accounts", cfg.Accounts).Msg("authserver listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func openAccounts(ctx context.Context, cfg *config.AuthServerConfig, log zerolog.Logger) (ports.AccountRepository, func()) {
	switch cfg.Accounts {
	case "memory":
		log.Warn().Msg("accounts are kept in memory")
		return authserver.NewMemoryRepository(), func() {}
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to mongo")
		}
		repo := mongostore.NewAccountRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure account indexes")
		}
		return repo, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect error")
			}
		}
	default:
		log.Fatal().Str("accounts", cfg.Accounts).Msg("unknown ACCOUNT_STORAGE, want mongo or memory")
		return nil, nil
	}
}
