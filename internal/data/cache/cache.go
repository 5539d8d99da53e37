package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/equityscan/equityscan/internal/data"
	"github.com/equityscan/equityscan/internal/domain/fundamentals"
	"github.com/equityscan/equityscan/internal/domain/indicators"
	"github.com/equityscan/equityscan/internal/domain/series"
	"github.com/equityscan/equityscan/internal/metrics"
)

// Payload purposes, also the cache key namespaces and metric labels.
const (
	purposePrice = "price"
	purposeFunds = "fundamentals"
)

// Default freshness windows. Intraday prices go stale fast; fundamentals
// move on reporting cycles.
const (
	DefaultPriceTTL        = 5 * time.Minute
	DefaultFundamentalsTTL = time.Hour
	DefaultPeriod          = "1y"
)

// PricePayload is what a price-side cache entry holds: the raw series and
// the latest-bar indicator snapshot derived from it, so repeat screens
// skip recomputation as well as refetching.
type PricePayload struct {
	Series   series.Series        `json:"series"`
	Snapshot *indicators.Snapshot `json:"snapshot"`
}

// DataCache fronts the market-data and fundamentals providers with a TTL
// store. Concurrent requests for the same symbol and purpose collapse to
// one provider call.
type DataCache struct {
	store  Store
	market data.MarketDataProvider
	funds  data.FundamentalsProvider
	group  singleflight.Group
	log    zerolog.Logger

	priceTTL time.Duration
	fundsTTL time.Duration
	period   string
}

// CacheOption customizes a DataCache.
type CacheOption func(*DataCache)

// WithPriceTTL overrides the price entry freshness window.
func WithPriceTTL(ttl time.Duration) CacheOption {
	return func(c *DataCache) { c.priceTTL = ttl }
}

// WithFundamentalsTTL overrides the fundamentals entry freshness window.
func WithFundamentalsTTL(ttl time.Duration) CacheOption {
	return func(c *DataCache) { c.fundsTTL = ttl }
}

// WithPeriod sets the history range requested from the market-data
// provider.
func WithPeriod(period string) CacheOption {
	return func(c *DataCache) { c.period = period }
}

// New builds a DataCache over the given store and providers.
func New(store Store, market data.MarketDataProvider, funds data.FundamentalsProvider, log zerolog.Logger, opts ...CacheOption) *DataCache {
	c := &DataCache{
		store:    store,
		market:   market,
		funds:    funds,
		log:      log.With().Str("component", "cache").Logger(),
		priceTTL: DefaultPriceTTL,
		fundsTTL: DefaultFundamentalsTTL,
		period:   DefaultPeriod,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PriceData returns the price series and indicator snapshot for symbol,
// fetching and deriving on a cache miss.
func (c *DataCache) PriceData(ctx context.Context, symbol string) (*PricePayload, error) {
	var payload PricePayload
	err := c.getOrFetch(ctx, purposePrice, symbol, c.priceTTL, &payload, func() (any, error) {
		s, err := c.market.FetchOHLCV(ctx, symbol, c.period)
		if err != nil {
			return nil, err
		}
		return &PricePayload{Series: s, Snapshot: indicators.Compute(s).Snapshot()}, nil
	})
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Fundamentals returns the fundamentals bundle for symbol, fetching on a
// cache miss.
func (c *DataCache) Fundamentals(ctx context.Context, symbol string) (*fundamentals.Bundle, error) {
	var bundle fundamentals.Bundle
	err := c.getOrFetch(ctx, purposeFunds, symbol, c.fundsTTL, &bundle, func() (any, error) {
		return c.funds.FetchFundamentals(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Invalidate drops both payloads for symbol.
func (c *DataCache) Invalidate(ctx context.Context, symbol string) error {
	for _, purpose := range []string{purposePrice, purposeFunds} {
		if err := c.store.Delete(ctx, cacheKey(purpose, symbol)); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying store.
func (c *DataCache) Close() error { return c.store.Close() }

func cacheKey(purpose, symbol string) string {
	return purpose + ":" + symbol
}

// getOrFetch is the shared read-through path. Store read errors degrade to
// misses; the fetch still runs and its result is offered back to the
// store best-effort.
func (c *DataCache) getOrFetch(ctx context.Context, purpose, symbol string, ttl time.Duration, out any, fetch func() (any, error)) error {
	key := cacheKey(purpose, symbol)

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("store read failed, treating as miss")
	} else if ok {
		if err := json.Unmarshal(raw, out); err == nil {
			metrics.CacheHits.WithLabelValues(purpose).Inc()
			return nil
		}
		c.log.Warn().Str("key", key).Msg("corrupt cache entry, refetching")
	}
	metrics.CacheMisses.WithLabelValues(purpose).Inc()

	// Single flight per key: concurrent misses share one provider call.
	// The flight serializes the value so followers deserialize into their
	// own destination rather than aliasing the leader's pointer.
	encoded, err, _ := c.group.Do(key, func() (any, error) {
		start := time.Now()
		value, err := fetch()
		metrics.FetchDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.FetchErrors.WithLabelValues(purpose).Inc()
			return nil, err
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cache: encode %s: %w", key, err)
		}
		if err := c.store.Set(ctx, key, raw, ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("store write failed")
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded.([]byte), out)
}
