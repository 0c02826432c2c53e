package scoring

import "testing"

func TestRank(t *testing.T) {
	a := &ScoredListing{RatioYears: 25}
	b := &ScoredListing{RatioYears: 18}
	c := &ScoredListing{RatioYears: 18}
	d := &ScoredListing{RatioYears: 30}
	scored := []*ScoredListing{a, b, c, d}

	Rank(scored, 18)

	// Ties keep insertion order.
	want := []*ScoredListing{b, c, a, d}
	for i, row := range want {
		if scored[i] != row {
			t.Fatalf("position %d: wrong row", i)
		}
		if scored[i].Rank != i+1 {
			t.Fatalf("position %d: rank=%d", i, scored[i].Rank)
		}
	}

	// The threshold is inclusive.
	if !b.IsDealP10 || !c.IsDealP10 {
		t.Fatal("rows at the threshold must be deals")
	}
	if a.IsDealP10 || d.IsDealP10 {
		t.Fatal("rows above the threshold must not be deals")
	}
}

func TestRankEmpty(t *testing.T) {
	Rank(nil, 10)
}
