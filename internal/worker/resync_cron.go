package worker

// resync_cron.go
// Background goroutine that periodically re-saves bundles whose mirror save
// failed. Uses the storage Circuit Breaker state to avoid hammering a downed
// backend.

import (
	"context"
	"time"

	"tablepos/internal/infra"
	"tablepos/internal/state"

	"github.com/rs/zerolog/log"
)

const defaultResyncInterval = 30 * time.Second

// Resyncer is the part of state.Store the cron needs.
type Resyncer interface {
	Dirty() []state.Bundle
	Resync(ctx context.Context) (int, error)
}

// ResyncConfig holds all dependencies for the resync goroutine.
type ResyncConfig struct {
	Store    Resyncer
	CB       *infra.CircuitBreaker
	Interval time.Duration // default 30s
}

// StartResyncCron launches a background goroutine that ticks every Interval
// and pushes dirty bundles back to storage. It respects the context for
// graceful shutdown.
func StartResyncCron(ctx context.Context, cfg ResyncConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultResyncInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("resync_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("resync_cron: shutting down")
				return
			case <-ticker.C:
				resyncOnce(ctx, cfg)
			}
		}
	}()
}

// resyncOnce runs a single tick and reports how many bundles were written.
func resyncOnce(ctx context.Context, cfg ResyncConfig) int {
	// If CB is open, skip entirely; the breaker would reject every save anyway
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("resync_cron: circuit breaker is open, skipping tick")
		return 0
	}

	dirty := cfg.Store.Dirty()
	if len(dirty) == 0 {
		return 0
	}

	log.Info().Int("count", len(dirty)).Msg("resync_cron: saving dirty bundles")

	saved, err := cfg.Store.Resync(ctx)
	if err != nil {
		log.Warn().Err(err).Int("saved", saved).Msg("resync_cron: storage still failing")
		return saved
	}
	log.Info().Int("saved", saved).Msg("resync_cron: storage caught up")
	return saved
}
