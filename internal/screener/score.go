package screener

import "github.com/equityscan/equityscan/internal/domain/indicators"

// volumeSpikeRatio is the multiple of 20-day average volume that counts
// as a spike for the volume_spike predicate.
const volumeSpikeRatio = 1.5

// confirmationRatio is the softer volume threshold that earns score
// points without being a hard filter.
const confirmationRatio = 1.2

// TechnicalScore rates the latest bar 0-100. Fixed point allocations: RSI
// in the 40-60 neutral band earns 20 (30-70 earns 15), close above SMA20
// and SMA50 earn 15 each, MACD line above signal earns 20, volume ratio
// above 1.2 earns 10. The RSI allocation joins the denominator only when
// RSI is defined; the others are always counted, so missing trend data
// lowers the score rather than hiding it.
func TechnicalScore(snap *indicators.Snapshot) float64 {
	score := 0.0
	total := 0.0

	if snap.RSI != nil {
		switch {
		case *snap.RSI >= 40 && *snap.RSI <= 60:
			score += 20
		case *snap.RSI >= 30 && *snap.RSI <= 70:
			score += 15
		}
		total += 20
	}

	if snap.SMA20 != nil && snap.Close > *snap.SMA20 {
		score += 15
	}
	total += 15

	if snap.SMA50 != nil && snap.Close > *snap.SMA50 {
		score += 15
	}
	total += 15

	if snap.MACDLine != nil && snap.MACDSignal != nil && *snap.MACDLine > *snap.MACDSignal {
		score += 20
	}
	total += 20

	if snap.VolumeRatio != nil && *snap.VolumeRatio > confirmationRatio {
		score += 10
	}
	total += 10

	return score / total * 100
}
