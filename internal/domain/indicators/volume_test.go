package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeProfileConservesVolume(t *testing.T) {
	close := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	volume := []float64{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000, 1100}

	levels := VolumeProfile(close, volume, 5)
	require.Len(t, levels, 5)

	total := 0.0
	for _, lvl := range levels {
		total += lvl.Volume
	}
	assert.InDelta(t, 6600.0, total, 1e-9)
}

func TestVolumeProfileMaxCloseInLastBucket(t *testing.T) {
	close := []float64{10, 20}
	volume := []float64{5, 7}

	levels := VolumeProfile(close, volume, 4)
	require.Len(t, levels, 4)
	assert.InDelta(t, 5.0, levels[0].Volume, 1e-9)
	assert.InDelta(t, 7.0, levels[3].Volume, 1e-9)
}

func TestVolumeProfileFlatSeriesCollapses(t *testing.T) {
	close := []float64{42, 42, 42}
	volume := []float64{1, 2, 3}

	levels := VolumeProfile(close, volume, 10)
	require.Len(t, levels, 1)
	assert.InDelta(t, 42.0, levels[0].Price, 1e-9)
	assert.InDelta(t, 6.0, levels[0].Volume, 1e-9)
}

func TestVolumeProfileBucketMidpoints(t *testing.T) {
	close := []float64{0, 10}
	volume := []float64{1, 1}

	levels := VolumeProfile(close, volume, 2)
	require.Len(t, levels, 2)
	assert.InDelta(t, 2.5, levels[0].Price, 1e-9)
	assert.InDelta(t, 7.5, levels[1].Price, 1e-9)
}

func TestVolumeProfileEmptyAndInvalid(t *testing.T) {
	assert.Nil(t, VolumeProfile(nil, nil, 5))
	assert.Nil(t, VolumeProfile([]float64{1}, []float64{1}, 0))
}
