// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/registhor/internal/api"
	"github.com/tomtom215/registhor/internal/auth"
	"github.com/tomtom215/registhor/internal/cache"
	"github.com/tomtom215/registhor/internal/config"
	"github.com/tomtom215/registhor/internal/database"
	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/supervisor"
	"github.com/tomtom215/registhor/internal/supervisor/services"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Service: "registhor",
		Output:  os.Stderr,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Registhor stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("driver", cfg.Database.Driver).
		Bool("cache", cfg.Cache.Enabled).
		Bool("comments", cfg.Features.Comments).
		Msg("Starting Registhor")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing cache")
			}
		}()
	}

	keys := cfg.Keys()
	if len(keys) == 0 {
		logging.Warn().Msg("No API keys configured, every /api/v1 request will be denied")
	}
	limiter := auth.NewFailureLimiter(cfg.Auth.FailedAttempts, cfg.Auth.FailedWindow)
	defer limiter.Stop()
	keyAuth := auth.NewAPIKeyAuth(keys, limiter)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(db, cfg, store)
	router := api.NewRouter(handler, keyAuth, nil)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewStoreMonitorService(db, cfg.Database.HealthInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := awaitTree(ctx, tree.ServeBackground(ctx))
	stop()

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return runErr
}

// awaitTree blocks until the tree stops, either on its own or after ctx is
// canceled. The tree delivers exactly one value on errCh and never closes it.
func awaitTree(ctx context.Context, errCh <-chan error) error {
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervisor tree: %w", err)
		}
		return nil
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for services to stop")
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor shutdown error")
	}
	return nil
}

// openCache returns nil when caching is disabled. A Redis backend that does
// not answer at startup is only logged; lookups degrade to misses until it
// comes back.
func openCache(cfg *config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		logging.Info().Msg("Response cache disabled")
		return nil, nil
	}

	store, err := cache.NewStore(cache.Config{
		Backend:       cfg.Cache.Backend,
		TTL:           cfg.Cache.TTL,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		KeyPrefix:     cfg.Cache.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			logging.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Cache backend not reachable, serving uncached")
		}
	}

	logging.Info().Str("backend", store.Backend()).Dur("ttl", cfg.Cache.TTL).Msg("Response cache enabled")
	return store, nil
}
