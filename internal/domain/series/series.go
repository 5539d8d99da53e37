// Package series defines the OHLCV bar container used throughout the
// screening engine. A Series is immutable once fetched: the cache replaces
// entries wholesale on refresh and never mutates bars in place.
package series

import (
	"fmt"
	"time"
)

// Bar is one OHLCV bar for a single trading interval.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered sequence of bars with strictly increasing
// timestamps and one bar per trading interval.
type Series []Bar

// Validate checks the structural invariants: non-decreasing order is not
// enough, timestamps must strictly increase (no duplicates).
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return fmt.Errorf("series: bar %d timestamp %s does not advance past %s",
				i, s[i].Time.Format(time.RFC3339), s[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Len returns the number of bars.
func (s Series) Len() int { return len(s) }

// Last returns the most recent bar, or false for an empty series.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Closes returns the close column.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high column.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

// Lows returns the low column.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// Volumes returns the volume column.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}
