package scoring

import "sort"

// DefaultMinSample is the smallest ratio sample the P10 threshold is
// trusted on. Below it the p10 slot falls back to the P20 cut and the
// stats row is flagged.
const DefaultMinSample = 30

// Percentile linearly interpolates over an ascending sample. ok is false
// only for an empty sample.
func Percentile(sorted []float64, p float64) (float64, bool) {
	if len(sorted) == 0 {
		return 0, false
	}
	if len(sorted) == 1 {
		return sorted[0], true
	}
	k := float64(len(sorted)-1) * p
	floorK := int(k)
	ceilK := floorK + 1
	if ceilK > len(sorted)-1 {
		ceilK = len(sorted) - 1
	}
	if floorK == ceilK {
		return sorted[floorK], true
	}
	fraction := k - float64(floorK)
	return sorted[floorK] + (sorted[ceilK]-sorted[floorK])*fraction, true
}

// Median averages the two middle values on even samples.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}
