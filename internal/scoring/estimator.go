package scoring

import (
	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/normalize"
)

// Direct comparables must be within ±20% of the buy listing's size when the
// buy listing has one.
const (
	sizeBandLower = 0.8
	sizeBandUpper = 1.2
)

// RatioYears is the price expressed in years of rent.
func RatioYears(priceEUR, monthlyRentEUR float64) float64 {
	return priceEUR / (monthlyRentEUR * 12)
}

// RentModel aggregates one zone's rent supply for estimation.
type RentModel struct {
	// MedianRentEURM2 is the zone-wide median rent per square meter, nil
	// when no rent listing carries a usable size.
	MedianRentEURM2 *float64

	parishBedroomMedian map[parishBedroomKey]float64
}

type parishBedroomKey struct {
	parish   string
	bedrooms int
}

// BuildRentModel computes the zone-wide and per parish+bedroom median rent
// per square meter from the zone's rent listings.
func BuildRentModel(rents []*models.Listing) *RentModel {
	model := &RentModel{parishBedroomMedian: map[parishBedroomKey]float64{}}
	var perM2 []float64
	grouped := map[parishBedroomKey][]float64{}
	for _, rent := range rents {
		if rent.SizeM2 == nil {
			continue
		}
		size := rent.SizeM2.InexactFloat64()
		if size == 0 {
			continue
		}
		value := rent.PriceEUR.InexactFloat64() / size
		perM2 = append(perM2, value)

		parish := parishKeyOf(rent)
		if parish == "" || rent.Bedrooms == nil {
			continue
		}
		key := parishBedroomKey{parish: parish, bedrooms: *rent.Bedrooms}
		grouped[key] = append(grouped[key], value)
	}
	if m, ok := Median(perM2); ok {
		model.MedianRentEURM2 = &m
	}
	for key, values := range grouped {
		if m, ok := Median(values); ok {
			model.parishBedroomMedian[key] = m
		}
	}
	return model
}

// ParishBedroomMedian returns the per-m² median matching the buy listing's
// parish and bedroom count, nil when the model has none.
func (m *RentModel) ParishBedroomMedian(buy *models.Listing) *float64 {
	parish := parishKeyOf(buy)
	if parish == "" || buy.Bedrooms == nil {
		return nil
	}
	if v, ok := m.parishBedroomMedian[parishBedroomKey{parish: parish, bedrooms: *buy.Bedrooms}]; ok {
		return &v
	}
	return nil
}

// EstimateRent predicts a monthly rent for a buy listing. Direct comparables
// (same parish key, same bedroom count, size within the band when the buy
// listing has a size) win over the parish+bedroom per-m² model. ok is false
// when neither path applies.
func EstimateRent(buy *models.Listing, rents []*models.Listing, parishBedroomMedianEURM2 *float64) (rentEUR float64, rentSource string, ok bool) {
	buyParish := parishKeyOf(buy)
	if buyParish == "" || buy.Bedrooms == nil {
		return 0, "", false
	}
	buyBedrooms := *buy.Bedrooms
	var buySize *float64
	if buy.SizeM2 != nil {
		v := buy.SizeM2.InexactFloat64()
		buySize = &v
	}

	var comps []float64
	for _, rent := range rents {
		if parishKeyOf(rent) != buyParish {
			continue
		}
		if rent.Bedrooms == nil || *rent.Bedrooms != buyBedrooms {
			continue
		}
		if rent.SizeM2 == nil {
			continue
		}
		rentSize := rent.SizeM2.InexactFloat64()
		if rentSize <= 0 {
			continue
		}
		if buySize != nil {
			if rentSize < *buySize*sizeBandLower || rentSize > *buySize*sizeBandUpper {
				continue
			}
		}
		comps = append(comps, rent.PriceEUR.InexactFloat64())
	}
	if len(comps) > 0 {
		m, _ := Median(comps)
		return m, models.RentSourceDirectMatch, true
	}

	if parishBedroomMedianEURM2 != nil && buySize != nil {
		return *parishBedroomMedianEURM2 * *buySize, models.RentSourceZoneModel, true
	}
	return 0, "", false
}

func parishKeyOf(listing *models.Listing) string {
	if listing.LocationText == nil {
		return ""
	}
	return normalize.ParishKey(*listing.LocationText)
}
