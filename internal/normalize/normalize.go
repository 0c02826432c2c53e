package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/mmcloughlin/geohash"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/TSCosta20/housing-project/internal/models"
)

// GeoKeyPrecision is the geohash cell size stored on listings (~150 m).
const GeoKeyPrecision = 7

// Text lowercases a value, strips diacritics and collapses whitespace so
// reference data and listing text compare equal regardless of accents or
// casing.
func Text(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if lowered == "" {
		return ""
	}
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// ParishKey reduces a free-form "Parish, Municipality, District" string to
// the normalized first segment, the coarse comparability bucket used by
// rent estimation. Empty result means no usable key.
func ParishKey(locationText string) string {
	value := strings.TrimSpace(locationText)
	if value == "" {
		return ""
	}
	first, _, _ := strings.Cut(value, ",")
	return Text(first)
}

// ContentHash digests one raw fetch for snapshot dedupe. The serialization
// is stable and order-independent: a JSON object with sorted keys holding
// source, external id, lowercased url and the full payload. The hash is
// storage bookkeeping only, never listing identity.
func ContentHash(source string, externalID, url *string, payload map[string]any) string {
	stable := map[string]any{
		"source":      source,
		"external_id": externalID,
		"url":         strings.ToLower(strings.TrimSpace(strPtr(url))),
		"payload":     payload,
	}
	serialized, err := json.Marshal(stable)
	if err != nil {
		serialized = []byte(source + ":" + strPtr(externalID) + ":" + strPtr(url))
	}
	digest := sha256.Sum256(serialized)
	return hex.EncodeToString(digest[:])
}

// ListingInput carries one collected offer before boundary validation.
type ListingInput struct {
	Source       string
	ListingType  string
	ExternalID   *string
	URL          *string
	Title        *string
	PriceEUR     float64
	SizeM2       *float64
	Bedrooms     *int
	Bathrooms    *int
	Lat          *float64
	Lng          *float64
	LocationText *string
	ContactPhone *string
	ContactEmail *string
	QualityFlags map[string]any
}

var (
	ErrMissingSource    = errors.New("listing source is required")
	ErrBadListingType   = errors.New("listing_type must be buy or rent")
	ErrNonPositivePrice = errors.New("price_eur must be positive")
)

// BuildListing validates the stated invariants at the boundary and returns
// a storable row. Non-positive sizes and out-of-range coordinates are
// dropped to null rather than rejected; a missing or non-positive price
// rejects the listing outright.
func BuildListing(in ListingInput, now time.Time) (*models.Listing, error) {
	if strings.TrimSpace(in.Source) == "" {
		return nil, ErrMissingSource
	}
	if in.ListingType != models.ListingTypeBuy && in.ListingType != models.ListingTypeRent {
		return nil, ErrBadListingType
	}
	if in.PriceEUR <= 0 {
		return nil, ErrNonPositivePrice
	}

	price := decimal.NewFromFloat(in.PriceEUR)
	listing := &models.Listing{
		Source:       in.Source,
		ListingType:  in.ListingType,
		ExternalID:   in.ExternalID,
		URL:          in.URL,
		Title:        in.Title,
		PriceEUR:     price,
		LastPriceEUR: &price,
		Bedrooms:     nonNegative(in.Bedrooms),
		Bathrooms:    nonNegative(in.Bathrooms),
		LocationText: in.LocationText,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		IsActive:     true,
		FirstSeenAt:  now.UTC(),
		LastSeenAt:   now.UTC(),
	}

	if in.SizeM2 != nil && *in.SizeM2 > 0 {
		size := decimal.NewFromFloat(*in.SizeM2)
		listing.SizeM2 = &size
	}
	if in.Lat != nil && in.Lng != nil && *in.Lat >= -90 && *in.Lat <= 90 && *in.Lng >= -180 && *in.Lng <= 180 {
		listing.Lat = in.Lat
		listing.Lng = in.Lng
		listing.GeoKey = geohash.EncodeWithPrecision(*in.Lat, *in.Lng, GeoKeyPrecision)
	}
	if len(in.QualityFlags) > 0 {
		if flags, err := json.Marshal(in.QualityFlags); err == nil {
			listing.QualityFlags = flags
		}
	}
	return listing, nil
}

func nonNegative(value *int) *int {
	if value == nil || *value < 0 {
		return nil
	}
	return value
}

func strPtr(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
