// Package indicators computes technical indicator time series from OHLCV
// input. All functions are pure and total over well-formed input: when the
// series is shorter than the required lookback they return NaN for the
// undefined warm-up bars instead of failing. NaN is the explicit
// missing-value marker; any comparison against it is false, so predicates
// built on these outputs fail closed.
package indicators

import "math"

// Undefined is the marker emitted for warm-up bars of lookback indicators.
func Undefined() float64 { return math.NaN() }

// Defined reports whether an indicator value carries data.
func Defined(v float64) bool { return !math.IsNaN(v) }

// SMA computes the simple moving average over a trailing window. The first
// window-1 values are undefined.
func SMA(values []float64, window int) []float64 {
	out := undefinedSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing 2/(span+1),
// seeded with the first observation. Every value is defined.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RollingMax computes the trailing maximum over a window.
func RollingMax(values []float64, window int) []float64 {
	out := undefinedSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		max := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out
}

// RollingMin computes the trailing minimum over a window.
func RollingMin(values []float64, window int) []float64 {
	out := undefinedSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		min := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = min
	}
	return out
}

// rollingStd computes the trailing sample standard deviation over a window.
func rollingStd(values []float64, window int) []float64 {
	out := undefinedSlice(len(values))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window-1))
	}
	return out
}

// Bollinger computes Bollinger Bands: mid is the window SMA, upper and
// lower sit k standard deviations away. Wherever the deviation is defined,
// upper >= mid >= lower holds.
func Bollinger(close []float64, window int, k float64) (mid, upper, lower []float64) {
	mid = SMA(close, window)
	std := rollingStd(close, window)
	upper = undefinedSlice(len(close))
	lower = undefinedSlice(len(close))
	for i := range close {
		if Defined(mid[i]) && Defined(std[i]) {
			upper[i] = mid[i] + k*std[i]
			lower[i] = mid[i] - k*std[i]
		}
	}
	return mid, upper, lower
}

// RSI computes the Relative Strength Index with simple rolling means of
// gains and losses (not Wilder smoothing). A bar with zero average loss
// and positive average gain reads 100; a flat window reads 50, which keeps
// zero denominators from propagating.
func RSI(close []float64, window int) []float64 {
	out := undefinedSlice(len(close))
	if len(close) < window+1 {
		return out
	}

	gains := make([]float64, len(close)-1)
	losses := make([]float64, len(close)-1)
	for i := 1; i < len(close); i++ {
		delta := close[i] - close[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain := SMA(gains, window)
	avgLoss := SMA(losses, window)

	// Delta index i-1 corresponds to bar index i.
	for i := window; i < len(close); i++ {
		g, l := avgGain[i-1], avgLoss[i-1]
		switch {
		case l == 0 && g == 0:
			out[i] = 50
		case l == 0:
			out[i] = 100
		default:
			rs := g / l
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal line
// (EMA of the MACD line) and the histogram (line minus signal).
func MACD(close []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	fastEMA := EMA(close, fast)
	slowEMA := EMA(close, slow)
	line = make([]float64, len(close))
	for i := range close {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine = EMA(line, signal)
	histogram = make([]float64, len(close))
	for i := range close {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}

// Stochastic computes the stochastic oscillator: %K locates the close
// within the trailing k-window high/low range, %D is the d-bar SMA of %K.
func Stochastic(high, low, close []float64, k, d int) (percentK, percentD []float64) {
	n := len(close)
	percentK = undefinedSlice(n)
	percentD = undefinedSlice(n)

	lowest := RollingMin(low, k)
	highest := RollingMax(high, k)
	for i := 0; i < n; i++ {
		if !Defined(lowest[i]) || !Defined(highest[i]) {
			continue
		}
		span := highest[i] - lowest[i]
		if span == 0 {
			// Flat range: the close sits nowhere in particular, mirror
			// the RSI neutral fallback.
			percentK[i] = 50
			continue
		}
		percentK[i] = 100 * (close[i] - lowest[i]) / span
	}

	for i := d - 1; i < n; i++ {
		sum := 0.0
		defined := true
		for j := i - d + 1; j <= i; j++ {
			if !Defined(percentK[j]) {
				defined = false
				break
			}
			sum += percentK[j]
		}
		if defined {
			percentD[i] = sum / float64(d)
		}
	}
	return percentK, percentD
}

func undefinedSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
