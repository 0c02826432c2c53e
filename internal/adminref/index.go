package adminref

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/geoapi"
	"github.com/TSCosta20/housing-project/internal/normalize"
)

// CountryCode is the only country the reference set covers.
const CountryCode = "pt"

const (
	MunicipalityDataset = "georef-portugal-concelho"
	ParishDataset       = "georef-portugal-freguesia"
)

// AdminKeys holds the normalized administrative identity of a location.
// Empty fields are unresolved.
type AdminKeys struct {
	Country      string
	District     string
	Municipality string
	Parish       string
}

type MunicipalityRecord struct {
	District     string
	Municipality string
}

type ParishRecord struct {
	District     string
	Municipality string
	Parish       string
}

type municipalityKey struct {
	district     string
	municipality string
}

type parishKey struct {
	district     string
	municipality string
	parish       string
}

type municipalityParish struct {
	municipality string
	parish       string
}

// Index validates parsed location segments against the official
// district/municipality/parish reference set. It is built once at startup
// and read-only afterwards.
type Index struct {
	municipalityKeys map[municipalityKey]struct{}
	parishKeys       map[parishKey]struct{}

	// Shortcut maps, populated only for names with a single candidate.
	uniqueMunicipality         map[string]municipalityKey
	uniqueParish               map[string]parishKey
	uniqueParishInMunicipality map[municipalityParish]parishKey
}

func NewIndex(municipalities []MunicipalityRecord, parishes []ParishRecord) *Index {
	idx := &Index{
		municipalityKeys: map[municipalityKey]struct{}{},
		parishKeys:       map[parishKey]struct{}{},
	}
	municipalityCandidates := map[string]map[municipalityKey]struct{}{}
	parishCandidates := map[string]map[parishKey]struct{}{}
	scopedParishCandidates := map[municipalityParish]map[parishKey]struct{}{}

	for _, rec := range municipalities {
		district := normalize.Text(rec.District)
		municipality := normalize.Text(rec.Municipality)
		if district == "" || municipality == "" {
			continue
		}
		key := municipalityKey{district: district, municipality: municipality}
		idx.municipalityKeys[key] = struct{}{}
		addCandidate(municipalityCandidates, municipality, key)
	}
	for _, rec := range parishes {
		district := normalize.Text(rec.District)
		municipality := normalize.Text(rec.Municipality)
		parish := normalize.Text(rec.Parish)
		if district == "" || municipality == "" || parish == "" {
			continue
		}
		key := parishKey{district: district, municipality: municipality, parish: parish}
		idx.parishKeys[key] = struct{}{}
		addCandidate(parishCandidates, parish, key)
		addCandidate(scopedParishCandidates, municipalityParish{municipality: municipality, parish: parish}, key)
	}

	idx.uniqueMunicipality = soleCandidates(municipalityCandidates)
	idx.uniqueParish = soleCandidates(parishCandidates)
	idx.uniqueParishInMunicipality = soleCandidates(scopedParishCandidates)
	return idx
}

// Build loads both reference datasets. Any fetch failure yields an empty
// index, so resolution degrades to parsed text without cross-validation.
func Build(ctx context.Context, client *geoapi.Client, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	municipalityRows, err := client.Records(ctx, MunicipalityDataset, "con_name,dis_name")
	if err != nil {
		logger.Warn("failed to load municipality reference data", zap.Error(err))
		return NewIndex(nil, nil)
	}
	parishRows, err := client.Records(ctx, ParishDataset, "fre_name,con_name,dis_name")
	if err != nil {
		logger.Warn("failed to load parish reference data", zap.Error(err))
		return NewIndex(nil, nil)
	}

	municipalities := make([]MunicipalityRecord, 0, len(municipalityRows))
	for _, row := range municipalityRows {
		municipalities = append(municipalities, MunicipalityRecord{
			District:     geoapi.StringField(row, "dis_name"),
			Municipality: geoapi.StringField(row, "con_name"),
		})
	}
	parishes := make([]ParishRecord, 0, len(parishRows))
	for _, row := range parishRows {
		parishes = append(parishes, ParishRecord{
			District:     geoapi.StringField(row, "dis_name"),
			Municipality: geoapi.StringField(row, "con_name"),
			Parish:       geoapi.StringField(row, "fre_name"),
		})
	}
	return NewIndex(municipalities, parishes)
}

func (idx *Index) Empty() bool {
	return len(idx.municipalityKeys) == 0 && len(idx.parishKeys) == 0
}

// ResolveLocation parses free text shaped like "parish, municipality,
// district" and corrects the parsed keys against the reference set. An
// unknown district/municipality pair is replaced through the unique
// municipality name when possible and dropped otherwise. A parish that
// uniquely identifies its triple fills in the rest.
func (idx *Index) ResolveLocation(locationText string) AdminKeys {
	var parish, municipality, district string
	parts := splitSegments(locationText)
	if len(parts) >= 1 {
		parish = normalize.Text(parts[0])
	}
	if len(parts) >= 2 {
		municipality = normalize.Text(parts[1])
	}
	if len(parts) >= 3 {
		district = normalize.Text(parts[2])
	}

	if district != "" && municipality != "" {
		if _, ok := idx.municipalityKeys[municipalityKey{district: district, municipality: municipality}]; !ok {
			if only, ok := idx.uniqueMunicipality[municipality]; ok {
				district = only.district
			} else {
				district = ""
				municipality = ""
			}
		}
	}

	if parish != "" {
		if district != "" && municipality != "" {
			key := parishKey{district: district, municipality: municipality, parish: parish}
			if _, ok := idx.parishKeys[key]; ok {
				return keysFor(key)
			}
		}
		if municipality != "" {
			if key, ok := idx.uniqueParishInMunicipality[municipalityParish{municipality: municipality, parish: parish}]; ok {
				return keysFor(key)
			}
		}
		if key, ok := idx.uniqueParish[parish]; ok {
			return keysFor(key)
		}
	}

	return AdminKeys{Country: CountryCode, District: district, Municipality: municipality, Parish: parish}
}

func keysFor(key parishKey) AdminKeys {
	return AdminKeys{
		Country:      CountryCode,
		District:     key.district,
		Municipality: key.municipality,
		Parish:       key.parish,
	}
}

func splitSegments(locationText string) []string {
	var parts []string
	for _, part := range strings.Split(locationText, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func addCandidate[N, K comparable](candidates map[N]map[K]struct{}, name N, key K) {
	set, ok := candidates[name]
	if !ok {
		set = map[K]struct{}{}
		candidates[name] = set
	}
	set[key] = struct{}{}
}

func soleCandidates[N, K comparable](candidates map[N]map[K]struct{}) map[N]K {
	out := make(map[N]K, len(candidates))
	for name, set := range candidates {
		if len(set) != 1 {
			continue
		}
		for key := range set {
			out[name] = key
		}
	}
	return out
}
