package indicators

import (
	"github.com/equityscan/equityscan/internal/domain/series"
)

// Standard parameterization shared by the dashboard and the screener.
const (
	SMAFastWindow    = 20
	SMASlowWindow    = 50
	RSIWindow        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignal       = 9
	BollingerWindow  = 20
	BollingerK       = 2.0
	SupertrendPeriod = 10
	SupertrendMult   = 3.0
	StochasticK      = 14
	StochasticD      = 3
	FisherPeriod     = 9
	VolumeAvgWindow  = 20
	BreakoutWindow   = 20

	// MinBars is the history the screener demands before evaluating
	// technical predicates; SMA50 is the longest lookback in the set.
	MinBars = SMASlowWindow
)

// Set holds the per-bar derived columns for one symbol. Warm-up bars of
// each lookback column are NaN.
type Set struct {
	SMA20      []float64
	SMA50      []float64
	RSI        []float64
	MACDLine   []float64
	MACDSig    []float64
	MACDHist   []float64
	BBMid      []float64
	BBUpper    []float64
	BBLower    []float64
	STLine     []float64
	STDir      []int
	StochK     []float64
	StochD     []float64
	Fisher     []float64
	FisherSig  []float64
	VolumeSMA  []float64
	RangeHigh  []float64 // trailing 20-bar high, used for breakout checks
	barCount   int
	lastClose  float64
	lastVolume float64
}

// Compute derives the full indicator set from a price series.
func Compute(s series.Series) *Set {
	close := s.Closes()
	high := s.Highs()
	low := s.Lows()
	volume := s.Volumes()

	set := &Set{barCount: len(s)}
	set.SMA20 = SMA(close, SMAFastWindow)
	set.SMA50 = SMA(close, SMASlowWindow)
	set.RSI = RSI(close, RSIWindow)
	set.MACDLine, set.MACDSig, set.MACDHist = MACD(close, MACDFast, MACDSlow, MACDSignal)
	set.BBMid, set.BBUpper, set.BBLower = Bollinger(close, BollingerWindow, BollingerK)
	set.STLine, set.STDir = Supertrend(high, low, close, SupertrendPeriod, SupertrendMult)
	set.StochK, set.StochD = Stochastic(high, low, close, StochasticK, StochasticD)
	set.Fisher, set.FisherSig = Fisher(high, low, FisherPeriod)
	set.VolumeSMA = SMA(volume, VolumeAvgWindow)
	set.RangeHigh = RollingMax(high, BreakoutWindow)
	if last, ok := s.Last(); ok {
		set.lastClose = last.Close
		set.lastVolume = last.Volume
	}
	return set
}

// Snapshot is the latest-bar view the screener evaluates predicates
// against. Undefined values are nil, which also makes the type safe to
// serialize for caching (NaN has no JSON encoding).
type Snapshot struct {
	Close         float64  `json:"close"`
	Volume        float64  `json:"volume"`
	SMA20         *float64 `json:"sma20,omitempty"`
	SMA50         *float64 `json:"sma50,omitempty"`
	RSI           *float64 `json:"rsi,omitempty"`
	MACDLine      *float64 `json:"macd_line,omitempty"`
	MACDSignal    *float64 `json:"macd_signal,omitempty"`
	MACDHist      *float64 `json:"macd_hist,omitempty"`
	BBUpper       *float64 `json:"bb_upper,omitempty"`
	BBMid         *float64 `json:"bb_mid,omitempty"`
	BBLower       *float64 `json:"bb_lower,omitempty"`
	Supertrend    *float64 `json:"supertrend,omitempty"`
	SupertrendDir int      `json:"supertrend_dir"`
	StochK        *float64 `json:"stoch_k,omitempty"`
	StochD        *float64 `json:"stoch_d,omitempty"`
	Fisher        *float64 `json:"fisher,omitempty"`
	FisherSignal  *float64 `json:"fisher_signal,omitempty"`
	VolumeRatio   *float64 `json:"volume_ratio,omitempty"`
	PrevRangeHigh *float64 `json:"prev_range_high,omitempty"`
}

// Snapshot extracts the latest bar's values. Returns nil for an empty set.
func (set *Set) Snapshot() *Snapshot {
	if set.barCount == 0 {
		return nil
	}
	i := set.barCount - 1
	snap := &Snapshot{
		Close:         set.lastClose,
		Volume:        set.lastVolume,
		SMA20:         optional(set.SMA20[i]),
		SMA50:         optional(set.SMA50[i]),
		RSI:           optional(set.RSI[i]),
		MACDLine:      optional(set.MACDLine[i]),
		MACDSignal:    optional(set.MACDSig[i]),
		MACDHist:      optional(set.MACDHist[i]),
		BBUpper:       optional(set.BBUpper[i]),
		BBMid:         optional(set.BBMid[i]),
		BBLower:       optional(set.BBLower[i]),
		Supertrend:    optional(set.STLine[i]),
		SupertrendDir: set.STDir[i],
		StochK:        optional(set.StochK[i]),
		StochD:        optional(set.StochD[i]),
		Fisher:        optional(set.Fisher[i]),
		FisherSignal:  optional(set.FisherSig[i]),
	}
	if Defined(set.VolumeSMA[i]) && set.VolumeSMA[i] > 0 {
		snap.VolumeRatio = optional(set.lastVolume / set.VolumeSMA[i])
	}
	// The breakout reference is the 20-bar high as of the previous bar,
	// so a fresh high counts as a break of the prior range.
	if i >= 1 && Defined(set.RangeHigh[i-1]) {
		snap.PrevRangeHigh = optional(set.RangeHigh[i-1])
	}
	return snap
}

func optional(v float64) *float64 {
	if !Defined(v) {
		return nil
	}
	return &v
}
