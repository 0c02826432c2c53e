package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/TSCosta20/housing-project/internal/models"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São João", "sao joao"},
		{"  LISBOA  ", "lisboa"},
		{"Santa   Maria\tMaior", "santa maria maior"},
		{"Óbidos", "obidos"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Fatalf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParishKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Estoril, Cascais, Lisboa", "estoril"},
		{"São Domingos de Benfica, Lisboa", "sao domingos de benfica"},
		{"Campolide", "campolide"},
		{"  ,Cascais", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParishKey(tt.in); got != tt.want {
			t.Fatalf("ParishKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentHashStable(t *testing.T) {
	ext := "123"
	url := "HTTPS://Example.com/A"
	urlLower := "https://example.com/a"
	a := ContentHash("olx", &ext, &url, map[string]any{"b": 2, "a": 1})
	b := ContentHash("olx", &ext, &urlLower, map[string]any{"a": 1, "b": 2})
	if a != b {
		t.Fatalf("hash not stable across key order and url casing: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex digest, got %q", a)
	}
	c := ContentHash("olx", &ext, &url, map[string]any{"a": 1, "b": 3})
	if a == c {
		t.Fatalf("different payloads must hash differently")
	}
}

func TestBuildListingValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := BuildListing(ListingInput{Source: "olx", ListingType: "buy", PriceEUR: 0}, now); err != ErrNonPositivePrice {
		t.Fatalf("expected ErrNonPositivePrice, got %v", err)
	}
	if _, err := BuildListing(ListingInput{Source: "olx", ListingType: "swap", PriceEUR: 100}, now); err != ErrBadListingType {
		t.Fatalf("expected ErrBadListingType, got %v", err)
	}
	if _, err := BuildListing(ListingInput{Source: " ", ListingType: "buy", PriceEUR: 100}, now); err != ErrMissingSource {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}

	badSize := -10.0
	badLat := 95.0
	lng := -9.15
	listing, err := BuildListing(ListingInput{
		Source:      "olx",
		ListingType: models.ListingTypeBuy,
		PriceEUR:    250000,
		SizeM2:      &badSize,
		Lat:         &badLat,
		Lng:         &lng,
	}, now)
	if err != nil {
		t.Fatalf("BuildListing: %v", err)
	}
	if listing.SizeM2 != nil {
		t.Fatalf("non-positive size must be dropped, got %v", listing.SizeM2)
	}
	if listing.Lat != nil || listing.Lng != nil || listing.GeoKey != "" {
		t.Fatalf("out-of-range coordinates must be dropped")
	}
	if !listing.FirstSeenAt.Equal(now) || !listing.LastSeenAt.Equal(now) {
		t.Fatalf("seen timestamps not set from now")
	}
	if listing.LastPriceEUR == nil || !listing.LastPriceEUR.Equal(listing.PriceEUR) {
		t.Fatalf("last price must start at current price")
	}
}

func TestBuildListingGeoKey(t *testing.T) {
	now := time.Now().UTC()
	lat, lng := 38.7223, -9.1393
	listing, err := BuildListing(ListingInput{
		Source:      "olx",
		ListingType: models.ListingTypeRent,
		PriceEUR:    1200,
		Lat:         &lat,
		Lng:         &lng,
	}, now)
	if err != nil {
		t.Fatalf("BuildListing: %v", err)
	}
	if len(listing.GeoKey) != GeoKeyPrecision {
		t.Fatalf("geo key length = %d, want %d", len(listing.GeoKey), GeoKeyPrecision)
	}
	if !strings.HasPrefix(listing.GeoKey, "eyc") {
		t.Fatalf("unexpected geohash for Lisbon: %q", listing.GeoKey)
	}
}
