// Package data defines the provider boundary the screening engine consumes.
// Implementations live in subpackages (yahoo); the cache wraps them.
package data

import (
	"context"
	"errors"

	"github.com/equityscan/equityscan/internal/domain/fundamentals"
	"github.com/equityscan/equityscan/internal/domain/series"
)

var (
	// ErrDataUnavailable means the provider returned nothing usable for the
	// symbol (unknown ticker, empty payload, upstream outage).
	ErrDataUnavailable = errors.New("data: unavailable")

	// ErrInsufficientHistory means a price series was fetched but is too
	// short for the indicator set's longest lookback.
	ErrInsufficientHistory = errors.New("data: insufficient history")
)

// MarketDataProvider fetches OHLCV history. period is a provider range
// token such as "1y" or "6mo".
type MarketDataProvider interface {
	FetchOHLCV(ctx context.Context, symbol, period string) (series.Series, error)
}

// FundamentalsProvider fetches the fundamentals bundle for one symbol.
type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, symbol string) (*fundamentals.Bundle, error)
}
