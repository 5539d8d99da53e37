package screener

import (
	"context"
	"fmt"
	"sort"
)

// Preset names a fixed screen parameterization. Presets carry no logic of
// their own; they feed the same engine as custom criteria.
type Preset string

const (
	PresetMomentum      Preset = "momentum"
	PresetValue         Preset = "value"
	PresetGrowth        Preset = "growth"
	PresetDividend      Preset = "dividend"
	PresetQuality       Preset = "quality"
	PresetSectorLeaders Preset = "sector-leaders"
)

// Presets lists every known preset in display order.
var Presets = []Preset{
	PresetMomentum, PresetValue, PresetGrowth,
	PresetDividend, PresetQuality, PresetSectorLeaders,
}

// ParsePreset validates a preset name.
func ParsePreset(name string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", &InvalidCriteriaError{Field: "preset", Reason: fmt.Sprintf("unknown preset %q", name)}
}

// sectorLeadersLimit caps the sector-leaders result list.
const sectorLeadersLimit = 10

// RunPreset runs a named preset over the universe. sector is only
// consulted by sector-leaders, which requires it.
func (s *Screener) RunPreset(ctx context.Context, symbols []string, preset Preset, sector string) ([]Result, error) {
	switch preset {
	case PresetMomentum:
		return s.RunTechnical(ctx, symbols, TechnicalCriteria{
			RSIMin:          Float(50),
			RSIMax:          Float(80),
			PriceAboveSMA20: true,
			PriceAboveSMA50: true,
			MACDBullish:     true,
			VolumeSpike:     true,
		})

	case PresetValue:
		return s.RunFundamental(ctx, symbols, FundamentalCriteria{
			MaxPERatio:      Float(20),
			MinROE:          Float(0.12),
			MaxDebtToEquity: Float(1.0),
			MinProfitMargin: Float(0.05),
			RequireDividend: true,
		})

	case PresetGrowth:
		return s.RunFundamental(ctx, symbols, FundamentalCriteria{
			MinRevenueGrowth: Float(0.15),
			MinROE:           Float(0.15),
			MinProfitMargin:  Float(0.10),
			MaxPERatio:       Float(40),
		})

	case PresetDividend:
		results, err := s.RunFundamental(ctx, symbols, FundamentalCriteria{
			RequireDividend: true,
			MinROE:          Float(0.10),
			MaxDebtToEquity: Float(1.5),
			MinProfitMargin: Float(0.05),
		})
		if err != nil {
			return nil, err
		}
		// Income screens rank by yield, not by composite score.
		sort.SliceStable(results, func(i, j int) bool {
			yi, yj := deref(results[i].DividendYield), deref(results[j].DividendYield)
			if yi != yj {
				return yi > yj
			}
			return results[i].Symbol < results[j].Symbol
		})
		return results, nil

	case PresetQuality:
		return s.RunFundamental(ctx, symbols, FundamentalCriteria{
			MinROE:           Float(0.15),
			MinProfitMargin:  Float(0.10),
			MaxDebtToEquity:  Float(0.5),
			MinRevenueGrowth: Float(0.05),
		})

	case PresetSectorLeaders:
		if sector == "" {
			return nil, &InvalidCriteriaError{Field: "sector", Reason: "required for sector-leaders"}
		}
		results, err := s.RunFundamental(ctx, symbols, FundamentalCriteria{
			Sectors:      []string{sector},
			MinMarketCap: Float(1_000_000_000),
			MinROE:       Float(0.10),
		})
		if err != nil {
			return nil, err
		}
		// Leaders means biggest, then best-scored among equals.
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].MarketCap != results[j].MarketCap {
				return results[i].MarketCap > results[j].MarketCap
			}
			return results[i].Symbol < results[j].Symbol
		})
		if len(results) > sectorLeadersLimit {
			results = results[:sectorLeadersLimit]
		}
		return results, nil

	default:
		return nil, &InvalidCriteriaError{Field: "preset", Reason: fmt.Sprintf("unknown preset %q", preset)}
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
