package main

import (
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/equityscan/equityscan/internal/config"
	"github.com/equityscan/equityscan/internal/data/cache"
	"github.com/equityscan/equityscan/internal/data/yahoo"
	"github.com/equityscan/equityscan/internal/screener"
	"github.com/equityscan/equityscan/internal/universe"
)

// buildScreener assembles the provider, cache and engine from config.
// Returns the screener, its universe, and a cleanup func.
func buildScreener(cfg *config.Config) (*screener.Screener, []string, func(), error) {
	logger := log.Logger

	symbols := universe.DefaultSymbols
	if cfg.Universe.File != "" {
		loaded, err := universe.Load(cfg.Universe.File)
		if err != nil {
			return nil, nil, nil, err
		}
		symbols = loaded
		logger.Info().Int("symbols", len(symbols)).Str("file", cfg.Universe.File).Msg("universe loaded")
	}
	// Scans spawn in slice order; sorting keeps runs comparable across
	// universe file edits.
	symbols = universe.Sorted(symbols)

	client := yahoo.NewClient(logger,
		yahoo.WithRateLimit(cfg.Provider.RequestsPerSecond, cfg.Provider.Burst))

	var store cache.Store
	if addr := cfg.Cache.Redis.Addr; addr != "" {
		store = cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   cfg.Cache.Redis.DB,
		}), cfg.Cache.Redis.KeyPrefix)
		logger.Info().Str("addr", addr).Msg("using redis cache")
	} else {
		store = cache.NewMemoryStore(cfg.Cache.MaxEntries)
	}

	dc := cache.New(store, client, client, logger,
		cache.WithPriceTTL(cfg.Cache.PriceTTL()),
		cache.WithFundamentalsTTL(cfg.Cache.FundamentalsTTL()),
		cache.WithPeriod(cfg.Provider.Period))

	sc := screener.New(dc, logger,
		screener.WithWorkers(cfg.Scan.Workers),
		screener.WithSymbolTimeout(cfg.Scan.SymbolTimeout()))

	cleanup := func() {
		if err := dc.Close(); err != nil {
			logger.Warn().Err(err).Msg("cache close failed")
		}
	}
	return sc, symbols, cleanup, nil
}
