package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platinummonkey/feedgate/pkg/accounts"
	"github.com/platinummonkey/feedgate/pkg/api"
	"github.com/platinummonkey/feedgate/pkg/authz"
	"github.com/platinummonkey/feedgate/pkg/config"
	"github.com/platinummonkey/feedgate/pkg/feed"
	"github.com/platinummonkey/feedgate/pkg/middleware"
	"github.com/platinummonkey/feedgate/pkg/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, os.Stdout)
	metrics := observability.NewMetrics()

	// Load the account directory. Weak credentials are a startup-time
	// fatal in production, before any traffic is accepted.
	accts, err := accounts.LoadFile(cfg.Auth.AccountsFile)
	if err != nil {
		log.Fatalf("Failed to load accounts from %s: %v", cfg.Auth.AccountsFile, err)
	}
	if cfg.Auth.Production {
		if err := accounts.ValidateProduction(accts); err != nil {
			log.Fatalf("Production credential policy violated: %v", err)
		}
	}
	store := accounts.NewStore(accounts.NewDirectory(accts))
	logger.WithField("accounts", len(accts)).Info("account directory loaded")

	if cfg.Auth.WatchAccounts {
		reloader, err := accounts.NewReloader(cfg.Auth.AccountsFile, store, logger)
		if err != nil {
			logger.WithError(err).Warn("accounts hot-reload disabled")
		} else {
			defer reloader.Close()
		}
	}

	facade := authz.NewFacade(store, cfg.Auth.FeedTokenSecret)
	generator := feed.NewRemoteGenerator(cfg.Feed.EngineURL, cfg.Feed.EngineTimeout)
	cache := feed.NewCache(cfg.Feed.CacheSize, cfg.Feed.CacheTTL)

	opts := api.Options{MetricsEndpoint: cfg.MetricsEnabled}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = middleware.NewRateLimiter(&middleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			WindowDuration:    time.Minute,
			BurstSize:         cfg.RateLimit.BurstSize,
		})
	}

	server := api.NewServer(facade, generator, cache, logger, metrics, opts)

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("feedgate listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
