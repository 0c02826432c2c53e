package scoring

import "sort"

// ZoneStats is one zone's nightly ratio distribution snapshot.
type ZoneStats struct {
	EligibleBuyCount  int
	EligibleRentCount int
	P10RatioYears     *float64
	P50RatioYears     *float64
	P90RatioYears     *float64
	MedianRentEURM2   *float64
	MinSampleUsed     bool
}

// BuildZoneStats computes the percentile cut points over a zone's ratio
// sample. minSample <= 0 means DefaultMinSample; below it the p10 slot
// carries the P20 cut instead and MinSampleUsed is set.
func BuildZoneStats(ratios []float64, eligibleRentCount int, medianRentEURM2 *float64, minSample int) ZoneStats {
	if minSample <= 0 {
		minSample = DefaultMinSample
	}
	sorted := append([]float64(nil), ratios...)
	sort.Float64s(sorted)
	enough := len(sorted) >= minSample

	stats := ZoneStats{
		EligibleBuyCount:  len(sorted),
		EligibleRentCount: eligibleRentCount,
		MedianRentEURM2:   medianRentEURM2,
		MinSampleUsed:     !enough,
	}

	p10Target := 0.10
	if !enough {
		p10Target = 0.20
	}
	if v, ok := Percentile(sorted, p10Target); ok {
		stats.P10RatioYears = &v
	}
	if v, ok := Percentile(sorted, 0.50); ok {
		stats.P50RatioYears = &v
	}
	if v, ok := Percentile(sorted, 0.90); ok {
		stats.P90RatioYears = &v
	}
	return stats
}
