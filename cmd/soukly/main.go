package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/soukly/marketplace-client/internal/app"
	"github.com/soukly/marketplace-client/internal/core/service"
	"github.com/soukly/marketplace-client/internal/infrastructure/backend"
	"github.com/soukly/marketplace-client/internal/infrastructure/config"
	"github.com/soukly/marketplace-client/internal/infrastructure/device"
	"github.com/soukly/marketplace-client/internal/infrastructure/diag"
	"github.com/soukly/marketplace-client/internal/infrastructure/store"
	"github.com/soukly/marketplace-client/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	stateDir, err := cfg.ResolveStateDir()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot resolve state directory")
	}
	st, err := store.New(stateDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open local store")
	}

	// The gateway asks the session manager for the bearer token; the session
	// manager logs in through the gateway. The function indirection breaks
	// the construction cycle.
	var sessions *service.SessionManager
	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout, backend.TokenFunc(func() (string, error) {
		return sessions.Token()
	}), log)
	sessions = service.NewSessionManager(st, client, log)

	cart := service.NewCartService(client, sessions, st, log)
	checkout := service.NewCheckoutSequencer(cart, client, sessions, log)
	badge := service.NewBadgePoller(client, sessions, cfg.BadgeInterval, log)
	location := service.NewLocationService(device.NewStaticLocator(cfg.Device.Latitude, cfg.Device.Longitude), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location.Acquire(ctx)
	go badge.Run(ctx)

	if cfg.Diag.Enabled {
		e := diag.NewServer()
		go func() {
			if err := e.Start(cfg.Diag.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("diagnostics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = e.Shutdown(shutdownCtx)
		}()
	}

	a := app.New(app.Deps{
		Sessions: sessions,
		Cart:     cart,
		Checkout: checkout,
		Badge:    badge,
		Location: location,
		Auth:     client,
		Catalog:  client,
		Orders:   client,
		Delivery: client,
		Log:      log,
		In:       os.Stdin,
		Out:      os.Stdout,
	})
	if err := a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("app terminated")
	}
}
