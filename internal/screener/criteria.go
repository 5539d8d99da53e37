// Package screener evaluates a symbol universe against fundamental and
// technical criteria, scores the survivors and ranks them. Criteria are
// immutable once a scan starts; a nil threshold means the predicate is
// inactive. Every active predicate fails closed: a symbol missing the
// field the predicate needs is excluded, never silently passed.
package screener

import (
	"fmt"

	"github.com/equityscan/equityscan/internal/universe"
)

// InvalidCriteriaError rejects a scan before any symbol is processed.
type InvalidCriteriaError struct {
	Field  string
	Reason string
}

func (e *InvalidCriteriaError) Error() string {
	return fmt.Sprintf("invalid criteria: %s: %s", e.Field, e.Reason)
}

// FundamentalCriteria names the fundamental predicates. JSON tags match
// the HTTP screen request payload.
type FundamentalCriteria struct {
	MinMarketCap     *float64 `json:"min_market_cap,omitempty" yaml:"min_market_cap"`
	MaxMarketCap     *float64 `json:"max_market_cap,omitempty" yaml:"max_market_cap"`
	MinPERatio       *float64 `json:"min_pe_ratio,omitempty" yaml:"min_pe_ratio"`
	MaxPERatio       *float64 `json:"max_pe_ratio,omitempty" yaml:"max_pe_ratio"`
	MinROE           *float64 `json:"min_roe,omitempty" yaml:"min_roe"`
	MaxDebtToEquity  *float64 `json:"max_debt_to_equity,omitempty" yaml:"max_debt_to_equity"`
	MinProfitMargin  *float64 `json:"min_profit_margin,omitempty" yaml:"min_profit_margin"`
	MinRevenueGrowth *float64 `json:"min_revenue_growth,omitempty" yaml:"min_revenue_growth"`
	RequireDividend  bool     `json:"dividend_yield,omitempty" yaml:"dividend_yield"`
	Sectors          []string `json:"sectors,omitempty" yaml:"sectors"`
}

// Active reports whether any fundamental predicate is enabled.
func (c FundamentalCriteria) Active() bool {
	return c.MinMarketCap != nil || c.MaxMarketCap != nil ||
		c.MinPERatio != nil || c.MaxPERatio != nil ||
		c.MinROE != nil || c.MaxDebtToEquity != nil ||
		c.MinProfitMargin != nil || c.MinRevenueGrowth != nil ||
		c.RequireDividend || len(c.Sectors) > 0
}

// Validate rejects self-contradictory or malformed criteria.
func (c FundamentalCriteria) Validate() error {
	if c.MinMarketCap != nil && c.MaxMarketCap != nil && *c.MinMarketCap > *c.MaxMarketCap {
		return &InvalidCriteriaError{Field: "market_cap", Reason: "min exceeds max"}
	}
	if c.MinPERatio != nil && c.MaxPERatio != nil && *c.MinPERatio > *c.MaxPERatio {
		return &InvalidCriteriaError{Field: "pe_ratio", Reason: "min exceeds max"}
	}
	if c.MinMarketCap != nil && *c.MinMarketCap < 0 {
		return &InvalidCriteriaError{Field: "min_market_cap", Reason: "must be non-negative"}
	}
	if c.MaxDebtToEquity != nil && *c.MaxDebtToEquity < 0 {
		return &InvalidCriteriaError{Field: "max_debt_to_equity", Reason: "must be non-negative"}
	}
	for _, s := range c.Sectors {
		if !universe.IsKnownSector(s) {
			return &InvalidCriteriaError{Field: "sectors", Reason: fmt.Sprintf("unknown sector %q", s)}
		}
	}
	return nil
}

// TechnicalCriteria names the technical predicates, all evaluated against
// the latest bar of the indicator set.
type TechnicalCriteria struct {
	RSIMin          *float64 `json:"rsi_min,omitempty" yaml:"rsi_min"`
	RSIMax          *float64 `json:"rsi_max,omitempty" yaml:"rsi_max"`
	PriceAboveSMA20 bool     `json:"price_above_sma20,omitempty" yaml:"price_above_sma20"`
	PriceAboveSMA50 bool     `json:"price_above_sma50,omitempty" yaml:"price_above_sma50"`
	MACDBullish     bool     `json:"macd_bullish,omitempty" yaml:"macd_bullish"`
	VolumeSpike     bool     `json:"volume_spike,omitempty" yaml:"volume_spike"`
	BreakoutPattern bool     `json:"breakout_pattern,omitempty" yaml:"breakout_pattern"`
	MinVolume       *float64 `json:"min_volume,omitempty" yaml:"min_volume"`
}

// Active reports whether any technical predicate is enabled.
func (c TechnicalCriteria) Active() bool {
	return c.RSIMin != nil || c.RSIMax != nil ||
		c.PriceAboveSMA20 || c.PriceAboveSMA50 ||
		c.MACDBullish || c.VolumeSpike || c.BreakoutPattern ||
		c.MinVolume != nil
}

// Validate rejects self-contradictory or malformed criteria.
func (c TechnicalCriteria) Validate() error {
	if c.RSIMin != nil && c.RSIMax != nil && *c.RSIMin > *c.RSIMax {
		return &InvalidCriteriaError{Field: "rsi", Reason: "min exceeds max"}
	}
	if c.RSIMin != nil && (*c.RSIMin < 0 || *c.RSIMin > 100) {
		return &InvalidCriteriaError{Field: "rsi_min", Reason: "must be in [0, 100]"}
	}
	if c.RSIMax != nil && (*c.RSIMax < 0 || *c.RSIMax > 100) {
		return &InvalidCriteriaError{Field: "rsi_max", Reason: "must be in [0, 100]"}
	}
	if c.MinVolume != nil && *c.MinVolume < 0 {
		return &InvalidCriteriaError{Field: "min_volume", Reason: "must be non-negative"}
	}
	return nil
}

// Weights blends fundamental and technical scores in a combined screen.
type Weights struct {
	Fundamental float64 `json:"fundamental" yaml:"fundamental"`
	Technical   float64 `json:"technical" yaml:"technical"`
}

// DefaultWeights is the 60/40 fundamental/technical blend.
var DefaultWeights = Weights{Fundamental: 0.6, Technical: 0.4}

// normalize renormalizes the weights to sum to 1, falling back to the
// default blend when both are zero.
func (w Weights) normalize() (Weights, error) {
	if w.Fundamental < 0 || w.Technical < 0 {
		return Weights{}, &InvalidCriteriaError{Field: "weights", Reason: "must be non-negative"}
	}
	total := w.Fundamental + w.Technical
	if total == 0 {
		return DefaultWeights, nil
	}
	return Weights{Fundamental: w.Fundamental / total, Technical: w.Technical / total}, nil
}

// Float returns a pointer to v, for building criteria literals.
func Float(v float64) *float64 { return &v }
