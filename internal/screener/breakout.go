package screener

import (
	"math"

	"github.com/equityscan/equityscan/internal/domain/indicators"
)

// RangeBreakout reports whether the latest close cleared the previous
// bar's trailing 20-day high. Using the prior bar's high means a bar that
// sets a fresh high counts as breaking its own former range. False when
// the reference is undefined.
func RangeBreakout(snap *indicators.Snapshot) bool {
	return snap.PrevRangeHigh != nil && snap.Close > *snap.PrevRangeHigh
}

// BreakoutStrength rates a breakout on a 0-10 scale: the percent the
// close sits above the broken range high, amplified by the volume ratio
// and capped at 10. Zero when there is no breakout or no volume reading.
func BreakoutStrength(snap *indicators.Snapshot) float64 {
	if !RangeBreakout(snap) || snap.VolumeRatio == nil || *snap.PrevRangeHigh <= 0 {
		return 0
	}
	pctAbove := (snap.Close - *snap.PrevRangeHigh) / *snap.PrevRangeHigh * 100
	return math.Min(pctAbove**snap.VolumeRatio, 10)
}
