package screener

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/equityscan/equityscan/internal/data"
	"github.com/equityscan/equityscan/internal/data/cache"
	"github.com/equityscan/equityscan/internal/domain/fundamentals"
	"github.com/equityscan/equityscan/internal/domain/indicators"
	"github.com/equityscan/equityscan/internal/metrics"
)

// Result is one qualifying symbol. Score is the sort key of the screen
// that produced it: financial score for fundamental screens, technical
// score for technical screens, blended score for combined screens.
type Result struct {
	Symbol       string  `json:"symbol"`
	CompanyName  string  `json:"company_name,omitempty"`
	Sector       string  `json:"sector,omitempty"`
	CurrentPrice float64 `json:"current_price"`

	MarketCap     float64  `json:"market_cap,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	ROE           *float64 `json:"roe,omitempty"`
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"`
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`

	RSI              *float64 `json:"rsi,omitempty"`
	PriceVsSMA20     *float64 `json:"price_vs_sma20,omitempty"`
	PriceVsSMA50     *float64 `json:"price_vs_sma50,omitempty"`
	MACDBullish      bool     `json:"macd_bullish"`
	VolumeRatio      *float64 `json:"volume_ratio,omitempty"`
	Breakout         bool     `json:"breakout"`
	BreakoutStrength float64  `json:"breakout_strength,omitempty"`

	FinancialScore  float64 `json:"financial_score"`
	FinancialRating string  `json:"financial_rating,omitempty"`
	TechnicalScore  float64 `json:"technical_score"`
	CombinedScore   float64 `json:"combined_score"`
	Score           float64 `json:"score"`
}

// Screener runs screens over a symbol universe. Safe for concurrent use;
// each Run call is an independent scan.
type Screener struct {
	cache         *cache.DataCache
	log           zerolog.Logger
	workers       int
	symbolTimeout time.Duration
}

// Option customizes a Screener.
type Option func(*Screener)

// WithWorkers bounds per-scan fan-out. Universes are small, so the
// default of 8 keeps provider pressure modest.
func WithWorkers(n int) Option {
	return func(s *Screener) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSymbolTimeout bounds fetch+evaluate time per symbol.
func WithSymbolTimeout(d time.Duration) Option {
	return func(s *Screener) {
		if d > 0 {
			s.symbolTimeout = d
		}
	}
}

// New builds a Screener over the given data cache.
func New(c *cache.DataCache, log zerolog.Logger, opts ...Option) *Screener {
	s := &Screener{
		cache:         c,
		log:           log.With().Str("component", "screener").Logger(),
		workers:       8,
		symbolTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunFundamental screens the universe on fundamental criteria, ranked by
// financial score.
func (s *Screener) RunFundamental(ctx context.Context, symbols []string, crit FundamentalCriteria) ([]Result, error) {
	if err := crit.Validate(); err != nil {
		return nil, err
	}
	defer observeScan("fundamental", time.Now())

	results := s.fanOut(ctx, "fundamental", symbols, func(ctx context.Context, symbol string) (*Result, error) {
		return s.evalFundamental(ctx, symbol, crit)
	})
	for i := range results {
		results[i].Score = results[i].FinancialScore
	}
	sortResults(results)
	metrics.ScanResults.WithLabelValues("fundamental").Observe(float64(len(results)))
	return results, nil
}

// RunTechnical screens the universe on technical criteria, ranked by
// technical score.
func (s *Screener) RunTechnical(ctx context.Context, symbols []string, crit TechnicalCriteria) ([]Result, error) {
	if err := crit.Validate(); err != nil {
		return nil, err
	}
	defer observeScan("technical", time.Now())

	results := s.fanOut(ctx, "technical", symbols, func(ctx context.Context, symbol string) (*Result, error) {
		return s.evalTechnical(ctx, symbol, crit)
	})
	for i := range results {
		results[i].Score = results[i].TechnicalScore
	}
	sortResults(results)
	metrics.ScanResults.WithLabelValues("technical").Observe(float64(len(results)))
	return results, nil
}

// RunCombined screens on both criteria sets. A symbol must pass both to
// appear; scores blend with the renormalized weights.
func (s *Screener) RunCombined(ctx context.Context, symbols []string, fc FundamentalCriteria, tc TechnicalCriteria, w Weights) ([]Result, error) {
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	weights, err := w.normalize()
	if err != nil {
		return nil, err
	}
	defer observeScan("combined", time.Now())

	results := s.fanOut(ctx, "combined", symbols, func(ctx context.Context, symbol string) (*Result, error) {
		fund, err := s.evalFundamental(ctx, symbol, fc)
		if err != nil || fund == nil {
			return nil, err
		}
		tech, err := s.evalTechnical(ctx, symbol, tc)
		if err != nil || tech == nil {
			return nil, err
		}
		merged := *fund
		merged.RSI = tech.RSI
		merged.PriceVsSMA20 = tech.PriceVsSMA20
		merged.PriceVsSMA50 = tech.PriceVsSMA50
		merged.MACDBullish = tech.MACDBullish
		merged.VolumeRatio = tech.VolumeRatio
		merged.Breakout = tech.Breakout
		merged.BreakoutStrength = tech.BreakoutStrength
		merged.TechnicalScore = tech.TechnicalScore
		merged.CombinedScore = fund.FinancialScore*weights.Fundamental + tech.TechnicalScore*weights.Technical
		return &merged, nil
	})
	for i := range results {
		results[i].Score = results[i].CombinedScore
	}
	sortResults(results)
	metrics.ScanResults.WithLabelValues("combined").Observe(float64(len(results)))
	return results, nil
}

// fanOut evaluates symbols on a bounded worker pool. A nil result means
// the symbol did not qualify; an error means it was skipped, never that
// the scan fails. Completion order is irrelevant, the caller sorts.
func (s *Screener) fanOut(ctx context.Context, kind string, symbols []string, eval func(context.Context, string) (*Result, error)) []Result {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []Result
	)
	sem := make(chan struct{}, s.workers)

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			symCtx, cancel := context.WithTimeout(ctx, s.symbolTimeout)
			defer cancel()

			result, err := eval(symCtx, symbol)
			if err != nil {
				metrics.ScanSymbolsSkipped.WithLabelValues(kind).Inc()
				s.log.Warn().Err(err).Str("symbol", symbol).Str("kind", kind).Msg("symbol skipped")
				return
			}
			if result == nil {
				return
			}
			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()
	return results
}

// evalFundamental returns nil without error when the symbol fails a
// predicate.
func (s *Screener) evalFundamental(ctx context.Context, symbol string, crit FundamentalCriteria) (*Result, error) {
	bundle, err := s.cache.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if !passMinMax(bundle.Basics.MarketCap, crit.MinMarketCap, crit.MaxMarketCap) {
		return nil, nil
	}
	if !passOptionalRange(bundle.Valuation.PERatio, crit.MinPERatio, crit.MaxPERatio) {
		return nil, nil
	}
	if !passOptionalMin(bundle.Profitability.ROE, crit.MinROE) {
		return nil, nil
	}
	if !passOptionalMax(bundle.Health.DebtToEquity, crit.MaxDebtToEquity) {
		return nil, nil
	}
	if !passOptionalMin(bundle.Profitability.ProfitMargin, crit.MinProfitMargin) {
		return nil, nil
	}
	if !passOptionalMin(bundle.Growth.RevenueGrowth, crit.MinRevenueGrowth) {
		return nil, nil
	}
	if crit.RequireDividend {
		if bundle.Dividend.Yield == nil || *bundle.Dividend.Yield <= 0 {
			return nil, nil
		}
	}
	if len(crit.Sectors) > 0 && !contains(crit.Sectors, bundle.Basics.Sector) {
		return nil, nil
	}

	score := fundamentals.ScoreBundle(bundle)
	return &Result{
		Symbol:          symbol,
		CompanyName:     bundle.Basics.CompanyName,
		Sector:          bundle.Basics.Sector,
		CurrentPrice:    bundle.Basics.CurrentPrice,
		MarketCap:       bundle.Basics.MarketCap,
		PERatio:         bundle.Valuation.PERatio,
		ROE:             bundle.Profitability.ROE,
		DebtToEquity:    bundle.Health.DebtToEquity,
		ProfitMargin:    bundle.Profitability.ProfitMargin,
		RevenueGrowth:   bundle.Growth.RevenueGrowth,
		DividendYield:   bundle.Dividend.Yield,
		FinancialScore:  score.Percentage,
		FinancialRating: score.Rating,
	}, nil
}

// evalTechnical returns nil without error when the symbol fails a
// predicate.
func (s *Screener) evalTechnical(ctx context.Context, symbol string, crit TechnicalCriteria) (*Result, error) {
	payload, err := s.cache.PriceData(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if payload.Series.Len() < indicators.MinBars {
		return nil, fmt.Errorf("%w: %s: %d bars, need %d",
			data.ErrInsufficientHistory, symbol, payload.Series.Len(), indicators.MinBars)
	}
	snap := payload.Snapshot
	if snap == nil {
		return nil, fmt.Errorf("%w: %s: no snapshot", data.ErrDataUnavailable, symbol)
	}

	if (crit.RSIMin != nil || crit.RSIMax != nil) &&
		!passOptionalRange(snap.RSI, crit.RSIMin, crit.RSIMax) {
		return nil, nil
	}
	if crit.PriceAboveSMA20 && !above(snap.Close, snap.SMA20) {
		return nil, nil
	}
	if crit.PriceAboveSMA50 && !above(snap.Close, snap.SMA50) {
		return nil, nil
	}
	if crit.MACDBullish {
		if snap.MACDLine == nil || snap.MACDSignal == nil || *snap.MACDLine <= *snap.MACDSignal {
			return nil, nil
		}
	}
	if crit.VolumeSpike {
		if snap.VolumeRatio == nil || *snap.VolumeRatio < volumeSpikeRatio {
			return nil, nil
		}
	}
	if crit.MinVolume != nil && snap.Volume < *crit.MinVolume {
		return nil, nil
	}
	breakout := RangeBreakout(snap)
	if crit.BreakoutPattern && !breakout {
		return nil, nil
	}

	result := &Result{
		Symbol:           symbol,
		CurrentPrice:     snap.Close,
		RSI:              snap.RSI,
		MACDBullish:      snap.MACDLine != nil && snap.MACDSignal != nil && *snap.MACDLine > *snap.MACDSignal,
		VolumeRatio:      snap.VolumeRatio,
		Breakout:         breakout,
		BreakoutStrength: BreakoutStrength(snap),
		TechnicalScore:   TechnicalScore(snap),
	}
	if snap.SMA20 != nil && *snap.SMA20 != 0 {
		result.PriceVsSMA20 = Float((snap.Close - *snap.SMA20) / *snap.SMA20 * 100)
	}
	if snap.SMA50 != nil && *snap.SMA50 != 0 {
		result.PriceVsSMA50 = Float((snap.Close - *snap.SMA50) / *snap.SMA50 * 100)
	}
	return result, nil
}

// sortResults orders by score descending with ties broken by symbol, so
// identical inputs always produce identical output order.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Symbol < results[j].Symbol
	})
}

func observeScan(kind string, start time.Time) {
	metrics.ScanDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// passMinMax checks an always-present value against optional bounds.
func passMinMax(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// passOptionalMin fails closed: an active bound with a missing value
// excludes the symbol.
func passOptionalMin(v, min *float64) bool {
	if min == nil {
		return true
	}
	return v != nil && *v >= *min
}

func passOptionalMax(v, max *float64) bool {
	if max == nil {
		return true
	}
	return v != nil && *v <= *max
}

func passOptionalRange(v, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if v == nil {
		return false
	}
	if min != nil && *v < *min {
		return false
	}
	if max != nil && *v > *max {
		return false
	}
	return true
}

func above(v float64, threshold *float64) bool {
	return threshold != nil && v > *threshold
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
