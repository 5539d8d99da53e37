package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bars(times ...time.Time) Series {
	s := make(Series, len(times))
	for i, ts := range times {
		s[i] = Bar{Time: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	return s
}

func TestValidateStrictlyIncreasing(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, bars(t0, t0.AddDate(0, 0, 1), t0.AddDate(0, 0, 2)).Validate())
	require.NoError(t, Series{}.Validate())

	assert.Error(t, bars(t0, t0).Validate())
	assert.Error(t, bars(t0.AddDate(0, 0, 1), t0).Validate())
}

func TestLastEmpty(t *testing.T) {
	_, ok := Series{}.Last()
	assert.False(t, ok)

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := bars(t0, t0.AddDate(0, 0, 1))
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, t0.AddDate(0, 0, 1), last.Time)
}

func TestColumnAccessors(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		{Time: t0, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Time: t0.AddDate(0, 0, 1), Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 20},
	}
	assert.Equal(t, []float64{1.5, 2.5}, s.Closes())
	assert.Equal(t, []float64{2, 3}, s.Highs())
	assert.Equal(t, []float64{0.5, 1}, s.Lows())
	assert.Equal(t, []float64{10, 20}, s.Volumes())
	assert.Equal(t, 2, s.Len())
}
