package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablepos/internal/config"
	"tablepos/internal/infra"
	"tablepos/internal/repository"
	"tablepos/internal/router"
	"tablepos/internal/service"
	"tablepos/internal/state"
	"tablepos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; admin tokens are not secure")
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TIMEZONE")
	}

	backend, closeBackend, err := repository.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Error().Err(err).Msg("close storage")
		}
	}()

	breaker := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		Name:             "storage",
		FailureThreshold: cfg.StoreBreakerFailures,
		SuccessThreshold: 1,
		OpenTimeout:      cfg.BreakerOpenTimeout(),
		Trips:            repository.BackendFailure,
	})
	bundles := repository.NewBreakerStore(backend, breaker)

	st := state.New(bundles)
	if err := loadState(st, cfg.BreakerOpenTimeout()); err != nil {
		log.Fatal().Err(err).Msg("could not read stored state; refusing to start on defaults")
	}

	// Background resync of bundles whose save failed
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	worker.StartResyncCron(workerCtx, worker.ResyncConfig{
		Store:    st,
		CB:       breaker,
		Interval: cfg.BreakerOpenTimeout(),
	})

	r := router.New(cfg, router.Deps{
		State:    st,
		Bundles:  bundles,
		Breaker:  breaker,
		Clock:    service.SystemClock(loc),
		Location: loc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", cfg.StorageDriver).Str("timezone", loc.String()).Msgf("POS listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	workerCancel()
	if n, err := st.Resync(shutdownCtx); err != nil {
		log.Error().Err(err).Int("saved", n).Msg("final resync failed")
	}
	log.Info().Msg("server exited")
}

const loadAttempts = 5

// loadState retries reads that fail on a storage error, waiting one breaker
// open period between attempts so the breaker is half-open for the next try.
// A loaded state whose migration could not be saved is not fatal; the resync
// cron writes it later.
func loadState(st *state.Store, wait time.Duration) error {
	var err error
	for attempt := 1; attempt <= loadAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = st.Load(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if !errors.Is(err, state.ErrLoadFailed) {
			log.Error().Err(err).Msg("state loaded but migration could not be saved")
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("state load failed")
		if attempt < loadAttempts {
			time.Sleep(wait)
		}
	}
	return err
}
