package scoring

import "testing"

func TestBuildZoneStatsSmallSample(t *testing.T) {
	medianRent := 12.0
	stats := BuildZoneStats([]float64{30, 10, 20}, 7, &medianRent, 0)

	if !stats.MinSampleUsed {
		t.Fatal("three ratios must trip the minimum sample fallback")
	}
	if stats.EligibleBuyCount != 3 || stats.EligibleRentCount != 7 {
		t.Fatalf("counts: got buy=%d rent=%d", stats.EligibleBuyCount, stats.EligibleRentCount)
	}
	// The p10 slot carries the P20 cut of the sorted sample.
	if stats.P10RatioYears == nil || !closeTo(*stats.P10RatioYears, 14) {
		t.Fatalf("p10 slot: got=%v want=14", stats.P10RatioYears)
	}
	if stats.P50RatioYears == nil || !closeTo(*stats.P50RatioYears, 20) {
		t.Fatalf("p50: got=%v want=20", stats.P50RatioYears)
	}
	if stats.P90RatioYears == nil || !closeTo(*stats.P90RatioYears, 28) {
		t.Fatalf("p90: got=%v want=28", stats.P90RatioYears)
	}
	if stats.MedianRentEURM2 == nil || *stats.MedianRentEURM2 != 12.0 {
		t.Fatalf("median rent: got=%v", stats.MedianRentEURM2)
	}
}

func TestBuildZoneStatsFullSample(t *testing.T) {
	ratios := make([]float64, 0, DefaultMinSample)
	for i := DefaultMinSample; i >= 1; i-- {
		ratios = append(ratios, float64(i))
	}
	stats := BuildZoneStats(ratios, 3, nil, 0)

	if stats.MinSampleUsed {
		t.Fatal("thirty ratios must use the true P10")
	}
	if stats.P10RatioYears == nil || !closeTo(*stats.P10RatioYears, 3.9) {
		t.Fatalf("p10: got=%v want=3.9", stats.P10RatioYears)
	}
	if stats.P50RatioYears == nil || !closeTo(*stats.P50RatioYears, 15.5) {
		t.Fatalf("p50: got=%v want=15.5", stats.P50RatioYears)
	}
	if stats.P90RatioYears == nil || !closeTo(*stats.P90RatioYears, 27.1) {
		t.Fatalf("p90: got=%v want=27.1", stats.P90RatioYears)
	}
}

func TestBuildZoneStatsCustomMinSample(t *testing.T) {
	ratios := []float64{10, 20, 30, 40}

	lowered := BuildZoneStats(ratios, 0, nil, 4)
	if lowered.MinSampleUsed {
		t.Fatal("four ratios satisfy a minimum of four")
	}
	if lowered.P10RatioYears == nil || !closeTo(*lowered.P10RatioYears, 13) {
		t.Fatalf("true p10: got=%v want=13", lowered.P10RatioYears)
	}

	raised := BuildZoneStats(ratios, 0, nil, 5)
	if !raised.MinSampleUsed {
		t.Fatal("four ratios fall short of a minimum of five")
	}
	if raised.P10RatioYears == nil || !closeTo(*raised.P10RatioYears, 16) {
		t.Fatalf("p20 fallback: got=%v want=16", raised.P10RatioYears)
	}
}

func TestBuildZoneStatsEmpty(t *testing.T) {
	stats := BuildZoneStats(nil, 0, nil, 0)
	if stats.P10RatioYears != nil || stats.P50RatioYears != nil || stats.P90RatioYears != nil {
		t.Fatal("empty sample must leave percentiles unset")
	}
	if !stats.MinSampleUsed {
		t.Fatal("empty sample is below the minimum")
	}
	if stats.EligibleBuyCount != 0 {
		t.Fatalf("buy count: got=%d", stats.EligibleBuyCount)
	}
}
