package scoring

import "testing"

func closeTo(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

func TestPercentile(t *testing.T) {
	cases := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{name: "interpolated median", sorted: []float64{1, 2, 3, 4}, p: 0.5, want: 2.5},
		{name: "single value", sorted: []float64{7}, p: 0.9, want: 7},
		{name: "p zero", sorted: []float64{1, 2, 3}, p: 0, want: 1},
		{name: "p one", sorted: []float64{1, 2, 3}, p: 1, want: 3},
		{name: "p10 of three", sorted: []float64{10, 20, 30}, p: 0.10, want: 12},
		{name: "p20 of three", sorted: []float64{10, 20, 30}, p: 0.20, want: 14},
		{name: "exact index", sorted: []float64{1, 2, 3, 4, 5}, p: 0.5, want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Percentile(tc.sorted, tc.p)
			if !ok {
				t.Fatal("expected a value")
			}
			if !closeTo(got, tc.want) {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestPercentileEmpty(t *testing.T) {
	if _, ok := Percentile(nil, 0.5); ok {
		t.Fatal("empty sample must not produce a value")
	}
}

func TestMedian(t *testing.T) {
	if got, ok := Median([]float64{3, 1, 2}); !ok || got != 2 {
		t.Fatalf("odd sample: got=%v ok=%v", got, ok)
	}
	if got, ok := Median([]float64{4, 1, 3, 2}); !ok || got != 2.5 {
		t.Fatalf("even sample: got=%v ok=%v", got, ok)
	}
	if _, ok := Median(nil); ok {
		t.Fatal("empty sample must not produce a value")
	}
}
