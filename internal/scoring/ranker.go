package scoring

import (
	"sort"

	"github.com/TSCosta20/housing-project/internal/models"
)

// ScoredListing pairs a buy listing with its rent estimate for one zone and
// day. Rank and IsDealP10 are filled by Rank once the zone threshold is
// known.
type ScoredListing struct {
	Listing    *models.Listing
	RentEUR    float64
	RentSource string
	RatioYears float64
	IsDealP10  bool
	Rank       int
}

// Rank orders scored listings by ascending ratio, keeping insertion order
// for ties, then assigns 1-based ranks and flags deals at or under the
// threshold.
func Rank(scored []*ScoredListing, threshold float64) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RatioYears < scored[j].RatioYears
	})
	for idx, row := range scored {
		row.Rank = idx + 1
		row.IsDealP10 = row.RatioYears <= threshold
	}
}
