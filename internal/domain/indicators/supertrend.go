package indicators

import "math"

// Supertrend trend directions.
const (
	TrendUp   = 1
	TrendDown = -1
)

// Supertrend computes the trend overlay used by the screener. The range
// proxy is a rolling mean over period of rolling-max(high) minus
// rolling-min(low) — deliberately not the classical true-range ATR; the
// banded behavior downstream depends on this exact formulation.
//
// The recurrence starts in an uptrend: it flips down when the close drops
// below the previous bar's lower band and flips up when the close rises
// above the previous bar's upper band, holding state otherwise. The
// emitted line is the lower band while up and the upper band while down.
// Bar 0 emits hl2 with direction +1.
func Supertrend(high, low, close []float64, period int, multiplier float64) (line []float64, direction []int) {
	n := len(close)
	line = undefinedSlice(n)
	direction = make([]int, n)
	if n == 0 {
		return line, direction
	}

	hl2 := make([]float64, n)
	for i := 0; i < n; i++ {
		hl2[i] = (high[i] + low[i]) / 2
	}

	span := make([]float64, n)
	maxHigh := RollingMax(high, period)
	minLow := RollingMin(low, period)
	for i := 0; i < n; i++ {
		if Defined(maxHigh[i]) && Defined(minLow[i]) {
			span[i] = maxHigh[i] - minLow[i]
		} else {
			span[i] = math.NaN()
		}
	}
	rangeProxy := smaSkippingUndefined(span, period)

	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := 0; i < n; i++ {
		if Defined(rangeProxy[i]) {
			upper[i] = hl2[i] + multiplier*rangeProxy[i]
			lower[i] = hl2[i] - multiplier*rangeProxy[i]
		} else {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
		}
	}

	inUptrend := true
	for i := 0; i < n; i++ {
		if i == 0 {
			line[i] = hl2[i]
			direction[i] = TrendUp
			continue
		}
		// Comparisons against undefined bands are false, so state holds
		// through the warm-up region.
		if Defined(upper[i-1]) && close[i] > upper[i-1] {
			inUptrend = true
		} else if Defined(lower[i-1]) && close[i] < lower[i-1] {
			inUptrend = false
		}
		if inUptrend {
			line[i] = lower[i]
			direction[i] = TrendUp
		} else {
			line[i] = upper[i]
			direction[i] = TrendDown
		}
	}
	return line, direction
}

// Fisher computes the Fisher Transform of hl2 normalized to [-1, 1] over a
// rolling period, clipped to +/-0.999 so the log stays finite. It is a
// single left-to-right scan carrying the previous fisher value; the signal
// line is the fisher value delayed one bar. Bar 0 emits 0 for both.
func Fisher(high, low []float64, period int) (fisher, signal []float64) {
	n := len(high)
	fisher = make([]float64, n)
	signal = make([]float64, n)
	if n == 0 {
		return fisher, signal
	}

	hl2 := make([]float64, n)
	for i := 0; i < n; i++ {
		hl2[i] = (high[i] + low[i]) / 2
	}
	highest := RollingMax(hl2, period)
	lowest := RollingMin(hl2, period)

	normalized := make([]float64, n)
	for i := 0; i < n; i++ {
		v := 0.0
		if Defined(highest[i]) && Defined(lowest[i]) && highest[i] != lowest[i] {
			v = 2*((hl2[i]-lowest[i])/(highest[i]-lowest[i])) - 1
		}
		if v > 0.999 {
			v = 0.999
		}
		if v < -0.999 {
			v = -0.999
		}
		normalized[i] = v
	}

	for i := 1; i < n; i++ {
		raw := 0.5 * math.Log((1+normalized[i])/(1-normalized[i]))
		fisher[i] = 0.33*raw + 0.67*fisher[i-1]
		signal[i] = fisher[i-1]
	}
	return fisher, signal
}

// smaSkippingUndefined behaves like SMA but keeps the output undefined
// until the window contains only defined inputs.
func smaSkippingUndefined(values []float64, window int) []float64 {
	out := undefinedSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		defined := true
		for j := i - window + 1; j <= i; j++ {
			if !Defined(values[j]) {
				defined = false
				break
			}
			sum += values[j]
		}
		if defined {
			out[i] = sum / float64(window)
		}
	}
	return out
}
