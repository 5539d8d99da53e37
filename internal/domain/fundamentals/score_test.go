package fundamentals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strongBundle() *Bundle {
	return &Bundle{
		Basics: Basics{Symbol: "TCS", Sector: "Technology"},
		Valuation: Valuation{
			PERatio:     Float(18),
			PriceToBook: Float(2.5),
		},
		Profitability: Profitability{
			ROE:          Float(0.22),
			ProfitMargin: Float(0.18),
		},
		Health: Health{
			DebtToEquity: Float(0.3),
			CurrentRatio: Float(2.1),
		},
		Growth: Growth{
			RevenueGrowth:  Float(0.25),
			EarningsGrowth: Float(0.22),
		},
		Dividend: Dividend{Yield: Float(0.03)},
	}
}

func TestScoreBundlePerfect(t *testing.T) {
	s := ScoreBundle(strongBundle())

	assert.InDelta(t, 25.0, s.Valuation, 1e-9)
	assert.InDelta(t, 25.0, s.Profitability, 1e-9)
	assert.InDelta(t, 25.0, s.Health, 1e-9)
	assert.InDelta(t, 20.0, s.Growth, 1e-9)
	assert.InDelta(t, 5.0, s.Dividend, 1e-9)
	assert.InDelta(t, 100.0, s.Total, 1e-9)
	assert.InDelta(t, 100.0, s.Percentage, 1e-9)
	assert.Equal(t, "Excellent", s.Rating)
}

func TestScoreBundleEmpty(t *testing.T) {
	s := ScoreBundle(&Bundle{})
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Percentage)
	assert.Equal(t, "Poor", s.Rating)
}

func TestScoreValuationBands(t *testing.T) {
	cases := []struct {
		name string
		pe   float64
		want float64
	}{
		{"mid range", 18, 15},
		{"cheap", 7, 10},
		{"rich", 30, 10},
		{"extreme low", 3, 5},
		{"extreme high", 60, 5},
		{"negative earnings", -12, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Bundle{Valuation: Valuation{PERatio: Float(tc.pe)}}
			assert.InDelta(t, tc.want, ScoreBundle(b).Valuation, 1e-9)
		})
	}
}

func TestScoreZeroDebtIsBestHealth(t *testing.T) {
	b := &Bundle{Health: Health{DebtToEquity: Float(0)}}
	assert.InDelta(t, 15.0, ScoreBundle(b).Health, 1e-9)
}

func TestScoreZeroRatioTreatedAsAbsent(t *testing.T) {
	b := &Bundle{
		Profitability: Profitability{ROE: Float(0)},
		Dividend:      Dividend{Yield: Float(0)},
	}
	s := ScoreBundle(b)
	assert.Zero(t, s.Profitability)
	assert.Zero(t, s.Dividend)
}

func TestScoreDividendOutsideHealthyBand(t *testing.T) {
	b := &Bundle{Dividend: Dividend{Yield: Float(0.09)}}
	assert.InDelta(t, 3.0, ScoreBundle(b).Dividend, 1e-9)
}

func TestRatingBoundaries(t *testing.T) {
	assert.Equal(t, "Excellent", rating(80))
	assert.Equal(t, "Good", rating(79.9))
	assert.Equal(t, "Good", rating(70))
	assert.Equal(t, "Average", rating(60))
	assert.Equal(t, "Below Average", rating(50))
	assert.Equal(t, "Poor", rating(49.9))
}
