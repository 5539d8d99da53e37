package indicators

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equityscan/equityscan/internal/domain/series"
)

func risingSeries(n int) series.Series {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(series.Series, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		s[i] = series.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000 + float64(i)*10,
		}
	}
	return s
}

func TestComputeSnapshotUptrend(t *testing.T) {
	s := risingSeries(60)
	snap := Compute(s).Snapshot()
	require.NotNil(t, snap)

	assert.InDelta(t, 159.0, snap.Close, 1e-9)
	require.NotNil(t, snap.SMA20)
	require.NotNil(t, snap.SMA50)
	assert.Greater(t, snap.Close, *snap.SMA20)
	assert.Greater(t, *snap.SMA20, *snap.SMA50)

	require.NotNil(t, snap.RSI)
	assert.Greater(t, *snap.RSI, 70.0)

	require.NotNil(t, snap.MACDLine)
	require.NotNil(t, snap.MACDSignal)
	assert.Greater(t, *snap.MACDLine, *snap.MACDSignal)

	assert.Equal(t, TrendUp, snap.SupertrendDir)

	require.NotNil(t, snap.BBUpper)
	require.NotNil(t, snap.BBLower)
	assert.Greater(t, *snap.BBUpper, *snap.BBLower)

	require.NotNil(t, snap.VolumeRatio)
	assert.Greater(t, *snap.VolumeRatio, 1.0)

	// A fresh high clears the prior 20-bar range.
	require.NotNil(t, snap.PrevRangeHigh)
	assert.InDelta(t, 159.0, *snap.PrevRangeHigh, 1e-9) // high of bar 58
}

func TestSnapshotShortHistoryHasNilLookbacks(t *testing.T) {
	snap := Compute(risingSeries(10)).Snapshot()
	require.NotNil(t, snap)

	assert.Nil(t, snap.SMA20)
	assert.Nil(t, snap.SMA50)
	assert.Nil(t, snap.RSI)
	assert.Nil(t, snap.BBUpper)
	// EMA-based columns are defined from the first bar.
	assert.NotNil(t, snap.MACDLine)
}

func TestSnapshotEmptySet(t *testing.T) {
	assert.Nil(t, Compute(nil).Snapshot())
}

func TestSnapshotMarshalsWithoutNaN(t *testing.T) {
	snap := Compute(risingSeries(10)).Snapshot()
	require.NotNil(t, snap)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "NaN")

	var back Snapshot
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Nil(t, back.SMA20)
	assert.InDelta(t, snap.Close, back.Close, 1e-9)
}
