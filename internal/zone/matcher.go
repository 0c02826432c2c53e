package zone

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/TSCosta20/housing-project/internal/adminref"
	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/normalize"
)

var emptyIndex = adminref.NewIndex(nil, nil)

// Matcher decides whether a normalized listing belongs to a zone.
type Matcher struct {
	Index *adminref.Index

	// EarthRadiusM overrides the sphere radius used for radius zones.
	// Zero means the 6371 km default.
	EarthRadiusM float64

	// AllowGeolessMatch makes radius and polygon zones accept listings
	// without coordinates. Meant for test fixtures from sources that never
	// carry geo data, never for production.
	AllowGeolessMatch bool
}

func (m *Matcher) Matches(zone *models.Zone, listing *models.Listing) bool {
	switch zone.ZoneType {
	case models.ZoneTypeRadius, models.ZoneTypePolygon:
		if listing.Lat == nil || listing.Lng == nil {
			return m.AllowGeolessMatch
		}
	}

	switch zone.ZoneType {
	case models.ZoneTypeRadius:
		if zone.CenterLat == nil || zone.CenterLng == nil || zone.RadiusMeters == nil {
			return false
		}
		sphere := m.EarthRadiusM
		if sphere <= 0 {
			sphere = defaultEarthRadiusMeters
		}
		distance := greatCircleMeters(*zone.CenterLat, *zone.CenterLng, *listing.Lat, *listing.Lng, sphere)
		return distance <= *zone.RadiusMeters
	case models.ZoneTypePolygon:
		ring, ok := polygonRing(zone.PolygonGeoJSON)
		if !ok {
			return false
		}
		return pointInPolygon(*listing.Lat, *listing.Lng, ring)
	case models.ZoneTypeAdmin:
		return m.matchesAdmin(zone, listing)
	}
	return false
}

type adminSelection struct {
	Country      string `json:"country"`
	District     string `json:"district"`
	Municipality string `json:"municipality"`
	Parish       string `json:"parish"`
	Freguesia    string `json:"freguesia"`
}

// adminCodes carries either a selections list or the legacy single-parish
// keys older zones were stored with.
type adminCodes struct {
	Selections []adminSelection `json:"selections"`

	Country   string `json:"country"`
	Parish    string `json:"parish"`
	Freguesia string `json:"freguesia"`
	Name      string `json:"name"`
}

func (m *Matcher) matchesAdmin(zone *models.Zone, listing *models.Listing) bool {
	if len(zone.AdminCodes) == 0 {
		return false
	}
	var codes adminCodes
	if err := json.Unmarshal(zone.AdminCodes, &codes); err != nil {
		return false
	}
	selections := codes.Selections
	if selections == nil {
		legacy := codes.Parish
		if legacy == "" {
			legacy = codes.Freguesia
		}
		if legacy == "" {
			legacy = codes.Name
		}
		if legacy == "" {
			return false
		}
		country := codes.Country
		if country == "" {
			country = "PT"
		}
		selections = []adminSelection{{Country: country, Parish: legacy}}
	}
	if len(selections) == 0 {
		return false
	}

	keys := m.resolveListing(listing)
	for _, sel := range selections {
		country := normalize.Text(sel.Country)
		district := normalize.Text(sel.District)
		municipality := normalize.Text(sel.Municipality)
		parishField := sel.Parish
		if parishField == "" {
			parishField = sel.Freguesia
		}
		parish := normalize.Text(parishField)

		if country == "" && district == "" && municipality == "" && parish == "" {
			continue
		}
		if country != "" && country != keys.Country {
			continue
		}
		if district != "" && district != keys.District {
			continue
		}
		if municipality != "" && municipality != keys.Municipality {
			continue
		}
		if parish != "" && parish != keys.Parish {
			continue
		}
		return true
	}
	return false
}

func (m *Matcher) resolveListing(listing *models.Listing) adminref.AdminKeys {
	idx := m.Index
	if idx == nil {
		idx = emptyIndex
	}
	text := ""
	if listing.LocationText != nil {
		text = *listing.LocationText
	}
	return idx.ResolveLocation(text)
}

// ValidPolygon reports whether the stored GeoJSON carries a usable outer
// ring. Zones failing this would silently never match, so creation rejects
// them upfront.
func ValidPolygon(raw datatypes.JSON) bool {
	_, ok := polygonRing(raw)
	return ok
}

type polygonGeometry struct {
	Coordinates [][][]float64 `json:"coordinates"`
}

// polygonRing extracts the outer ring. Holes are ignored.
func polygonRing(raw datatypes.JSON) ([][]float64, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var geo polygonGeometry
	if err := json.Unmarshal(raw, &geo); err != nil {
		return nil, false
	}
	if len(geo.Coordinates) == 0 || len(geo.Coordinates[0]) == 0 {
		return nil, false
	}
	ring := geo.Coordinates[0]
	for _, vertex := range ring {
		if len(vertex) < 2 {
			return nil, false
		}
	}
	return ring, true
}
