package indicators

// PriceLevel is one bucket of a volume profile: the bucket's price
// midpoint and the total volume traded at closes inside it.
type PriceLevel struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// VolumeProfile partitions [min(close), max(close)] into bins equal-width
// buckets and sums the volume of bars whose close falls in
// [bucket_low, bucket_high). The final bucket is closed on the right so
// the max-close bar is counted and the bucket volumes sum exactly to the
// input volume. A flat series collapses to a single bucket holding all
// volume.
func VolumeProfile(close, volume []float64, bins int) []PriceLevel {
	if len(close) == 0 || bins <= 0 {
		return nil
	}

	min, max := close[0], close[0]
	for _, c := range close[1:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	if min == max {
		total := 0.0
		for _, v := range volume {
			total += v
		}
		return []PriceLevel{{Price: min, Volume: total}}
	}

	width := (max - min) / float64(bins)
	levels := make([]PriceLevel, bins)
	for i := range levels {
		levels[i].Price = min + (float64(i)+0.5)*width
	}
	for i, c := range close {
		bucket := int((c - min) / width)
		if bucket >= bins {
			bucket = bins - 1
		}
		levels[bucket].Volume += volume[i]
	}
	return levels
}
