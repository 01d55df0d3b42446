// seedcatalog overwrites the menu and discount bundles with the built-in
// demo catalog. Orders, summaries and settings are left alone.
// Usage: go run ./cmd/seedcatalog
package main

import (
	"context"
	"os"
	"time"

	"tablepos/internal/config"
	"tablepos/internal/repository"
	"tablepos/internal/state"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	store, closeStore, err := repository.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	def := state.Defaults()
	if err := store.Save(ctx, string(state.BundleMenu), def.Menu); err != nil {
		log.Fatal().Err(err).Msg("save menu")
	}
	if err := store.Save(ctx, string(state.BundleDiscounts), def.Discounts); err != nil {
		log.Fatal().Err(err).Msg("save discounts")
	}
	log.Info().
		Str("driver", cfg.StorageDriver).
		Int("menu_items", len(def.Menu)).
		Int("discount_rules", len(def.Discounts)).
		Msg("catalog seeded")
}
