// Command storefront runs the client shell: the session store, the session
// manager and the gated views, served over HTTP.
//
// The shell keeps one session per process, the way a single user's client
// does. Every request that reaches it acts as that user, so it listens on
// loopback unless HOST says otherwise.
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

	"github.com/99minutos/storefront/internal/api"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	"github.com/99minutos/storefront/internal/infrastructure/authclient"
	"github.com/99minutos/storefront/internal/infrastructure/db/memory"
	redisstore "github.com/99minutos/storefront/internal/infrastructure/db/redis"
	"github.com/99minutos/storefront/internal/pkg/config"
	"github.com/99minutos/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "storefront",
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Durable session copy ──────────────────────────────────────────────
	storage, closeStorage := openStorage(ctx, cfg, log)
	defer closeStorage()

	// ── Session ───────────────────────────────────────────────────────────
	auth := authclient.New(cfg.Auth.BaseURL, cfg.Auth.Timeout)
	store := service.NewSessionStore()
	manager := service.NewSessionManager(store, auth, storage, logger.Component("session"))

	unsubscribe := store.Subscribe(func(id *domain.Identity) {
		if id == nil {
			log.Info().Msg("signed out")
			return
		}
		log.Info().Str("username", id.Username).Str("role", id.Role.String()).Msg("signed in")
	})
	defer unsubscribe()

	manager.Restore(ctx)

	// ── HTTP ──────────────────────────────────────────────────────────────
	e := api.NewRouter(api.Deps{
		Store:    store,
		Sessions: manager,
		Storage:  storage,
		Auth:     auth,
		Log:      logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("auth", cfg.Auth.BaseURL).Msg("storefront listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStorage, func()) {
	switch cfg.Session.Storage {
	case "memory":
		log.Warn().Msg("session storage is in memory; sessions will not survive a restart")
		return memory.NewSessionStorage(), func() {}
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect to redis")
		}
		return redisstore.NewSessionStorage(client, cfg.Session.Namespace), func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("redis close error")
			}
		}
	default:
		log.Fatal().Str("storage", cfg.Session.Storage).Msg("unknown SESSION_STORAGE, want redis or memory")
		return nil, nil
	}
}
