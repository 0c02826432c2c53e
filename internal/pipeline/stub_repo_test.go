package pipeline

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
)

type membershipKey struct {
	zoneID    uint64
	listingID uint64
}

type scoreKey struct {
	zoneID    uint64
	listingID uint64
	statsDate string
}

type statsKey struct {
	zoneID    uint64
	statsDate string
}

// stubRepo is a test-only in-memory implementation of repository.Repository
// covering every call the pipeline and the notifier make.
type stubRepo struct {
	sources []models.Source
	zones   []models.Zone
	tokens  map[string][]models.DeviceToken

	nextListingID uint64
	listings      map[uint64]models.Listing
	raws          map[string]models.RawListing
	memberships   map[membershipKey]models.ZoneMembership
	stats         map[statsKey]models.ZoneDailyStats
	scores        map[scoreKey]models.ListingScore
	nextEventID   uint64
	events        []models.DealEvent
	runs          map[string]models.PipelineRun
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		tokens:      map[string][]models.DeviceToken{},
		listings:    map[uint64]models.Listing{},
		raws:        map[string]models.RawListing{},
		memberships: map[membershipKey]models.ZoneMembership{},
		stats:       map[statsKey]models.ZoneDailyStats{},
		scores:      map[scoreKey]models.ListingScore{},
		runs:        map[string]models.PipelineRun{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertSource(ctx context.Context, item *models.Source) error { return nil }
func (s *stubRepo) ListSources(ctx context.Context, enabledOnly bool) ([]models.Source, error) {
	if !enabledOnly {
		return s.sources, nil
	}
	out := make([]models.Source, 0, len(s.sources))
	for _, source := range s.sources {
		if source.Enabled {
			out = append(out, source)
		}
	}
	return out, nil
}

func (s *stubRepo) CreateZone(ctx context.Context, item *models.Zone) error { return nil }
func (s *stubRepo) UpdateZone(ctx context.Context, item *models.Zone) error { return nil }
func (s *stubRepo) GetZoneByID(ctx context.Context, id uint64) (*models.Zone, error) {
	for i := range s.zones {
		if s.zones[i].ID == id {
			zone := s.zones[i]
			return &zone, nil
		}
	}
	return nil, nil
}
func (s *stubRepo) ListZones(ctx context.Context, params repository.ListZonesParams) ([]models.Zone, error) {
	return nil, nil
}
func (s *stubRepo) CountZones(ctx context.Context, params repository.ListZonesParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) ListActiveZones(ctx context.Context) ([]models.Zone, error) {
	out := make([]models.Zone, 0, len(s.zones))
	for _, zone := range s.zones {
		if zone.IsActive {
			out = append(out, zone)
		}
	}
	return out, nil
}
func (s *stubRepo) SetZoneActive(ctx context.Context, id uint64, active bool) error { return nil }

func (s *stubRepo) InsertRawListings(ctx context.Context, items []models.RawListing) error {
	for _, item := range items {
		key := item.Source + "|" + item.ContentHash
		if _, ok := s.raws[key]; ok {
			continue
		}
		s.raws[key] = item
	}
	return nil
}

func (s *stubRepo) FindListingCandidates(ctx context.Context, source string, externalID, url *string) ([]models.Listing, error) {
	ids := make([]uint64, 0, len(s.listings))
	for id := range s.listings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Listing
	if externalID != nil && strings.TrimSpace(*externalID) != "" {
		want := strings.TrimSpace(*externalID)
		for _, id := range ids {
			listing := s.listings[id]
			if listing.Source == source && listing.ExternalID != nil && *listing.ExternalID == want {
				out = append(out, listing)
			}
		}
	}
	if url != nil && strings.TrimSpace(*url) != "" {
		want := strings.ToLower(strings.TrimSpace(*url))
		for _, id := range ids {
			listing := s.listings[id]
			if listing.URL != nil && strings.ToLower(strings.TrimSpace(*listing.URL)) == want {
				out = append(out, listing)
			}
		}
	}
	return out, nil
}

func (s *stubRepo) CreateListing(ctx context.Context, item *models.Listing) error {
	s.nextListingID++
	item.ID = s.nextListingID
	s.listings[item.ID] = *item
	return nil
}
func (s *stubRepo) UpdateListing(ctx context.Context, item *models.Listing) error {
	s.listings[item.ID] = *item
	return nil
}
func (s *stubRepo) GetListingByID(ctx context.Context, id uint64) (*models.Listing, error) {
	if listing, ok := s.listings[id]; ok {
		return &listing, nil
	}
	return nil, nil
}
func (s *stubRepo) ListListingsByIDs(ctx context.Context, ids []uint64) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(ids))
	for _, id := range ids {
		if listing, ok := s.listings[id]; ok {
			out = append(out, listing)
		}
	}
	return out, nil
}
func (s *stubRepo) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	return nil, nil
}
func (s *stubRepo) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpsertZoneMemberships(ctx context.Context, items []models.ZoneMembership) error {
	for _, item := range items {
		s.memberships[membershipKey{item.ZoneID, item.ListingID}] = item
	}
	return nil
}

func (s *stubRepo) UpsertZoneDailyStats(ctx context.Context, item *models.ZoneDailyStats) error {
	s.stats[statsKey{item.ZoneID, item.StatsDate.Format("2006-01-02")}] = *item
	return nil
}
func (s *stubRepo) GetZoneDailyStats(ctx context.Context, zoneID uint64, statsDate time.Time) (*models.ZoneDailyStats, error) {
	if row, ok := s.stats[statsKey{zoneID, statsDate.Format("2006-01-02")}]; ok {
		return &row, nil
	}
	return nil, nil
}
func (s *stubRepo) ListZoneDailyStats(ctx context.Context, params repository.ListZoneStatsParams) ([]models.ZoneDailyStats, error) {
	return nil, nil
}
func (s *stubRepo) UpsertListingScores(ctx context.Context, items []models.ListingScore) error {
	for _, item := range items {
		s.scores[scoreKey{item.ZoneID, item.ListingID, item.StatsDate.Format("2006-01-02")}] = item
	}
	return nil
}
func (s *stubRepo) ListListingScores(ctx context.Context, params repository.ListScoresParams) ([]models.ListingScore, error) {
	return nil, nil
}
func (s *stubRepo) CountListingScores(ctx context.Context, params repository.ListScoresParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InsertDealEvent(ctx context.Context, item *models.DealEvent) error {
	s.nextEventID++
	item.ID = s.nextEventID
	s.events = append(s.events, *item)
	return nil
}
func (s *stubRepo) ListDealEventsForPair(ctx context.Context, zoneID, listingID uint64) ([]models.DealEvent, error) {
	var out []models.DealEvent
	for _, event := range s.events {
		if event.ZoneID == zoneID && event.ListingID == listingID {
			out = append(out, event)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TriggeredAt.Equal(out[j].TriggeredAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].TriggeredAt.After(out[j].TriggeredAt)
	})
	return out, nil
}
func (s *stubRepo) ListDealEvents(ctx context.Context, params repository.ListDealEventsParams) ([]models.DealEvent, error) {
	return nil, nil
}
func (s *stubRepo) CountDealEvents(ctx context.Context, params repository.ListDealEventsParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) ListUnnotifiedPushEvents(ctx context.Context) ([]models.DealEvent, error) {
	var out []models.DealEvent
	for _, event := range s.events {
		if !event.WasNotifiedPush {
			out = append(out, event)
		}
	}
	return out, nil
}
func (s *stubRepo) MarkDealEventPushNotified(ctx context.Context, id uint64) error {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].WasNotifiedPush = true
		}
	}
	return nil
}

func (s *stubRepo) UpsertDeviceToken(ctx context.Context, item *models.DeviceToken) error {
	return nil
}
func (s *stubRepo) ListActiveDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error) {
	return s.tokens[userID], nil
}
func (s *stubRepo) DeactivateDeviceToken(ctx context.Context, token string) error { return nil }

func (s *stubRepo) InsertPipelineRun(ctx context.Context, item *models.PipelineRun) error {
	s.runs[item.RunID] = *item
	return nil
}
func (s *stubRepo) UpdatePipelineRun(ctx context.Context, item *models.PipelineRun) error {
	s.runs[item.RunID] = *item
	return nil
}
func (s *stubRepo) GetPipelineRunByRunID(ctx context.Context, runID string) (*models.PipelineRun, error) {
	if run, ok := s.runs[runID]; ok {
		return &run, nil
	}
	return nil, nil
}
func (s *stubRepo) ListPipelineRuns(ctx context.Context, params repository.ListPipelineRunsParams) ([]models.PipelineRun, error) {
	return nil, nil
}
