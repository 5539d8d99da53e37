package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendBars(n int, start, step float64) (high, low, close []float64) {
	high = make([]float64, n)
	low = make([]float64, n)
	close = make([]float64, n)
	for i := 0; i < n; i++ {
		c := start + float64(i)*step
		close[i] = c
		high[i] = c + 1
		low[i] = c - 1
	}
	return high, low, close
}

func TestSupertrendUptrendDirection(t *testing.T) {
	high, low, close := trendBars(60, 100, 1)
	line, dir := Supertrend(high, low, close, 10, 3.0)

	require.Len(t, line, 60)
	require.Len(t, dir, 60)
	assert.Equal(t, TrendUp, dir[0])
	for i, d := range dir {
		assert.Equal(t, TrendUp, d, "bar %d", i)
	}
	// In an uptrend the line is the lower band, below the close.
	last := len(close) - 1
	require.True(t, Defined(line[last]))
	assert.Less(t, line[last], close[last])
}

func TestSupertrendFlipsOnReversal(t *testing.T) {
	high, low, close := trendBars(40, 100, 1)
	// Gap crash straight through the previous bar's lower band, then a
	// low drift that never recovers the upper band.
	for i := 40; i < 60; i++ {
		c := 20.0 - float64(i-40)*0.5
		close = append(close, c)
		high = append(high, c+1)
		low = append(low, c-1)
	}
	_, dir := Supertrend(high, low, close, 10, 3.0)

	assert.Equal(t, TrendUp, dir[39])
	assert.Equal(t, TrendDown, dir[len(dir)-1])
}

func TestSupertrendBarZero(t *testing.T) {
	line, dir := Supertrend([]float64{12}, []float64{8}, []float64{10}, 10, 3.0)
	require.Len(t, line, 1)
	assert.InDelta(t, 10.0, line[0], 1e-9) // hl2
	assert.Equal(t, TrendUp, dir[0])
}

func TestSupertrendDirectionDomain(t *testing.T) {
	high, low, close := trendBars(80, 200, -0.5)
	_, dir := Supertrend(high, low, close, 10, 3.0)
	for i, d := range dir {
		assert.Contains(t, []int{TrendUp, TrendDown}, d, "bar %d", i)
	}
}

func TestFisherFiniteAndSeeded(t *testing.T) {
	high, low, _ := trendBars(50, 100, 1)
	fisher, signal := Fisher(high, low, 9)

	assert.Zero(t, fisher[0])
	assert.Zero(t, signal[0])
	for i := range fisher {
		assert.True(t, Defined(fisher[i]), "fisher bar %d", i)
		assert.True(t, Defined(signal[i]), "signal bar %d", i)
	}
	// Signal trails the fisher line by one bar.
	for i := 1; i < len(fisher); i++ {
		assert.InDelta(t, fisher[i-1], signal[i], 1e-12)
	}
}

func TestFisherPositiveInUptrend(t *testing.T) {
	high, low, _ := trendBars(60, 100, 2)
	fisher, _ := Fisher(high, low, 9)
	assert.Greater(t, fisher[len(fisher)-1], 0.0)
}

func TestFisherFlatSeriesStaysZero(t *testing.T) {
	n := 30
	flat := make([]float64, n)
	for i := range flat {
		flat[i] = 100
	}
	fisher, signal := Fisher(flat, flat, 9)
	for i := 0; i < n; i++ {
		assert.Zero(t, fisher[i])
		assert.Zero(t, signal[i])
	}
}
