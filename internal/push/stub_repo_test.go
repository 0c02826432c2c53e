package push

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Only the notifier paths are backed by state.
type stubRepo struct {
	events []models.DealEvent
	zones  map[uint64]*models.Zone
	tokens map[string][]models.DeviceToken
	marked []uint64
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertSource(ctx context.Context, item *models.Source) error { return nil }
func (s *stubRepo) ListSources(ctx context.Context, enabledOnly bool) ([]models.Source, error) {
	return nil, nil
}

func (s *stubRepo) CreateZone(ctx context.Context, item *models.Zone) error { return nil }
func (s *stubRepo) UpdateZone(ctx context.Context, item *models.Zone) error { return nil }
func (s *stubRepo) GetZoneByID(ctx context.Context, id uint64) (*models.Zone, error) {
	return s.zones[id], nil
}
func (s *stubRepo) ListZones(ctx context.Context, params repository.ListZonesParams) ([]models.Zone, error) {
	return nil, nil
}
func (s *stubRepo) CountZones(ctx context.Context, params repository.ListZonesParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) ListActiveZones(ctx context.Context) ([]models.Zone, error) { return nil, nil }
func (s *stubRepo) SetZoneActive(ctx context.Context, id uint64, active bool) error {
	return nil
}

func (s *stubRepo) InsertRawListings(ctx context.Context, items []models.RawListing) error {
	return nil
}

func (s *stubRepo) FindListingCandidates(ctx context.Context, source string, externalID, url *string) ([]models.Listing, error) {
	return nil, nil
}
func (s *stubRepo) CreateListing(ctx context.Context, item *models.Listing) error { return nil }
func (s *stubRepo) UpdateListing(ctx context.Context, item *models.Listing) error { return nil }
func (s *stubRepo) GetListingByID(ctx context.Context, id uint64) (*models.Listing, error) {
	return nil, nil
}
func (s *stubRepo) ListListingsByIDs(ctx context.Context, ids []uint64) ([]models.Listing, error) {
	return nil, nil
}
func (s *stubRepo) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	return nil, nil
}
func (s *stubRepo) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpsertZoneMemberships(ctx context.Context, items []models.ZoneMembership) error {
	return nil
}

func (s *stubRepo) UpsertZoneDailyStats(ctx context.Context, item *models.ZoneDailyStats) error {
	return nil
}
func (s *stubRepo) GetZoneDailyStats(ctx context.Context, zoneID uint64, statsDate time.Time) (*models.ZoneDailyStats, error) {
	return nil, nil
}
func (s *stubRepo) ListZoneDailyStats(ctx context.Context, params repository.ListZoneStatsParams) ([]models.ZoneDailyStats, error) {
	return nil, nil
}
func (s *stubRepo) UpsertListingScores(ctx context.Context, items []models.ListingScore) error {
	return nil
}
func (s *stubRepo) ListListingScores(ctx context.Context, params repository.ListScoresParams) ([]models.ListingScore, error) {
	return nil, nil
}
func (s *stubRepo) CountListingScores(ctx context.Context, params repository.ListScoresParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InsertDealEvent(ctx context.Context, item *models.DealEvent) error { return nil }
func (s *stubRepo) ListDealEventsForPair(ctx context.Context, zoneID, listingID uint64) ([]models.DealEvent, error) {
	return nil, nil
}
func (s *stubRepo) ListDealEvents(ctx context.Context, params repository.ListDealEventsParams) ([]models.DealEvent, error) {
	return nil, nil
}
func (s *stubRepo) CountDealEvents(ctx context.Context, params repository.ListDealEventsParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) ListUnnotifiedPushEvents(ctx context.Context) ([]models.DealEvent, error) {
	return s.events, nil
}
func (s *stubRepo) MarkDealEventPushNotified(ctx context.Context, id uint64) error {
	s.marked = append(s.marked, id)
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
	return nil
}
func (s *stubRepo) UpdatePipelineRun(ctx context.Context, item *models.PipelineRun) error {
	return nil
}
func (s *stubRepo) GetPipelineRunByRunID(ctx context.Context, runID string) (*models.PipelineRun, error) {
	return nil, nil
}
func (s *stubRepo) ListPipelineRuns(ctx context.Context, params repository.ListPipelineRunsParams) ([]models.PipelineRun, error) {
	return nil, nil
}
