package fundamentals

// Component score ceilings. They sum to 100, so the raw total doubles as
// the percentage score.
const (
	MaxValuation     = 25
	MaxProfitability = 25
	MaxHealth        = 25
	MaxGrowth        = 20
	MaxDividend      = 5
	MaxTotal         = MaxValuation + MaxProfitability + MaxHealth + MaxGrowth + MaxDividend
)

// Score is the banded financial health assessment of a bundle.
type Score struct {
	Valuation     float64 `json:"valuation"`
	Profitability float64 `json:"profitability"`
	Health        float64 `json:"financial_health"`
	Growth        float64 `json:"growth"`
	Dividend      float64 `json:"dividend"`
	Total         float64 `json:"total_score"`
	Percentage    float64 `json:"percentage"`
	Rating        string  `json:"rating"`
}

// ScoreBundle computes the banded financial score. Mid-range valuation
// multiples score highest; extremes still earn a floor so a scored ratio
// always beats a missing one. Absent ratios contribute zero. A zero ratio
// is treated as absent except for debt/equity, where zero is the best
// possible reading.
func ScoreBundle(b *Bundle) Score {
	var s Score

	if pe := b.Valuation.PERatio; present(pe) {
		switch {
		case *pe >= 10 && *pe <= 25:
			s.Valuation += 15
		case (*pe >= 5 && *pe < 10) || (*pe > 25 && *pe <= 35):
			s.Valuation += 10
		default:
			s.Valuation += 5
		}
	}
	if pb := b.Valuation.PriceToBook; present(pb) {
		switch {
		case *pb >= 1 && *pb <= 3:
			s.Valuation += 10
		case (*pb >= 0.5 && *pb < 1) || (*pb > 3 && *pb <= 5):
			s.Valuation += 5
		}
	}

	if roe := b.Profitability.ROE; present(roe) {
		switch {
		case *roe >= 0.15:
			s.Profitability += 15
		case *roe >= 0.10:
			s.Profitability += 10
		case *roe >= 0.05:
			s.Profitability += 5
		}
	}
	if pm := b.Profitability.ProfitMargin; present(pm) {
		switch {
		case *pm >= 0.15:
			s.Profitability += 10
		case *pm >= 0.10:
			s.Profitability += 7
		case *pm >= 0.05:
			s.Profitability += 5
		}
	}

	if de := b.Health.DebtToEquity; de != nil {
		switch {
		case *de <= 0.5:
			s.Health += 15
		case *de <= 1.0:
			s.Health += 10
		case *de <= 2.0:
			s.Health += 5
		}
	}
	if cr := b.Health.CurrentRatio; present(cr) {
		switch {
		case *cr >= 1.5:
			s.Health += 10
		case *cr >= 1.0:
			s.Health += 7
		}
	}

	if rg := b.Growth.RevenueGrowth; present(rg) {
		switch {
		case *rg >= 0.20:
			s.Growth += 10
		case *rg >= 0.10:
			s.Growth += 7
		case *rg >= 0.05:
			s.Growth += 5
		}
	}
	if eg := b.Growth.EarningsGrowth; present(eg) {
		switch {
		case *eg >= 0.20:
			s.Growth += 10
		case *eg >= 0.10:
			s.Growth += 7
		case *eg >= 0.05:
			s.Growth += 5
		}
	}

	if dy := b.Dividend.Yield; present(dy) && *dy > 0 {
		if *dy >= 0.02 && *dy <= 0.06 {
			s.Dividend += 5
		} else {
			s.Dividend += 3
		}
	}

	s.Total = s.Valuation + s.Profitability + s.Health + s.Growth + s.Dividend
	s.Percentage = s.Total / MaxTotal * 100
	s.Rating = rating(s.Percentage)
	return s
}

func rating(pct float64) string {
	switch {
	case pct >= 80:
		return "Excellent"
	case pct >= 70:
		return "Good"
	case pct >= 60:
		return "Average"
	case pct >= 50:
		return "Below Average"
	default:
		return "Poor"
	}
}

func present(v *float64) bool { return v != nil && *v != 0 }
