package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Sources ----------------------------------------------------------------

func (s *Store) UpsertSource(ctx context.Context, item *models.Source) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"kind",
			"config",
			"enabled",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListSources(ctx context.Context, enabledOnly bool) ([]models.Source, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Source{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	var items []models.Source
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Zones ------------------------------------------------------------------

func (s *Store) CreateZone(ctx context.Context, item *models.Zone) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateZone(ctx context.Context, item *models.Zone) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) GetZoneByID(ctx context.Context, id uint64) (*models.Zone, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var zone models.Zone
	err := s.db.WithContext(ctx).First(&zone, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (s *Store) ListZones(ctx context.Context, params repository.ListZonesParams) ([]models.Zone, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Zone{})
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		query = query.Where("user_id = ?", strings.TrimSpace(*params.UserID))
	}
	if params.ZoneType != nil && strings.TrimSpace(*params.ZoneType) != "" {
		query = query.Where("zone_type = ?", strings.TrimSpace(*params.ZoneType))
	}
	if params.Active != nil {
		query = query.Where("is_active = ?", *params.Active)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Zone
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountZones(ctx context.Context, params repository.ListZonesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Zone{})
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		query = query.Where("user_id = ?", strings.TrimSpace(*params.UserID))
	}
	if params.ZoneType != nil && strings.TrimSpace(*params.ZoneType) != "" {
		query = query.Where("zone_type = ?", strings.TrimSpace(*params.ZoneType))
	}
	if params.Active != nil {
		query = query.Where("is_active = ?", *params.Active)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListActiveZones(ctx context.Context) ([]models.Zone, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Zone
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SetZoneActive(ctx context.Context, id uint64, active bool) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Zone{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// --- Raw listings -----------------------------------------------------------

// InsertRawListings keeps one row per (source, content_hash); repeats of an
// already seen payload are dropped at the database.
func (s *Store) InsertRawListings(ctx context.Context, items []models.RawListing) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return createInBatches(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}, {Name: "content_hash"}},
		DoNothing: true,
	}), items, 200)
}

// --- Normalized listings ----------------------------------------------------

// FindListingCandidates fetches rows eligible for dedupe resolution: exact
// (source, external_id) matches plus case-insensitive url matches.
func (s *Store) FindListingCandidates(ctx context.Context, source string, externalID, url *string) ([]models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var out []models.Listing
	if externalID != nil && strings.TrimSpace(*externalID) != "" {
		var byID []models.Listing
		err := s.db.WithContext(ctx).
			Where("source = ?", source).
			Where("external_id = ?", strings.TrimSpace(*externalID)).
			Find(&byID).Error
		if err != nil {
			return nil, err
		}
		out = append(out, byID...)
	}
	if url != nil && strings.TrimSpace(*url) != "" {
		var byURL []models.Listing
		err := s.db.WithContext(ctx).
			Where("LOWER(url) = LOWER(?)", strings.TrimSpace(*url)).
			Find(&byURL).Error
		if err != nil {
			return nil, err
		}
		out = append(out, byURL...)
	}
	return out, nil
}

func (s *Store) CreateListing(ctx context.Context, item *models.Listing) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateListing(ctx context.Context, item *models.Listing) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) GetListingByID(ctx context.Context, id uint64) (*models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var listing models.Listing
	err := s.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *Store) ListListingsByIDs(ctx context.Context, ids []uint64) ([]models.Listing, error) {
	if s == nil || s.db == nil || len(ids) == 0 {
		return nil, nil
	}
	var items []models.Listing
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := listingsQuery(s.db.WithContext(ctx), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "last_seen_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Listing
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := listingsQuery(s.db.WithContext(ctx), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func listingsQuery(db *gorm.DB, params repository.ListListingsParams) *gorm.DB {
	query := db.Model(&models.Listing{})
	if params.Source != nil && strings.TrimSpace(*params.Source) != "" {
		query = query.Where("listings_normalized.source = ?", strings.TrimSpace(*params.Source))
	}
	if params.ListingType != nil && strings.TrimSpace(*params.ListingType) != "" {
		query = query.Where("listings_normalized.listing_type = ?", strings.TrimSpace(*params.ListingType))
	}
	if params.Active != nil {
		query = query.Where("listings_normalized.is_active = ?", *params.Active)
	}
	if params.ZoneID != nil {
		query = query.
			Joins("JOIN listing_zone_membership ON listing_zone_membership.listing_id = listings_normalized.id").
			Where("listing_zone_membership.zone_id = ?", *params.ZoneID)
	}
	if params.GeoKeyPrefix != nil && strings.TrimSpace(*params.GeoKeyPrefix) != "" {
		query = query.Where("listings_normalized.geo_key LIKE ?", strings.TrimSpace(*params.GeoKeyPrefix)+"%")
	}
	if params.MinPriceEUR != nil {
		query = query.Where("listings_normalized.price_eur >= ?", *params.MinPriceEUR)
	}
	if params.MaxPriceEUR != nil {
		query = query.Where("listings_normalized.price_eur <= ?", *params.MaxPriceEUR)
	}
	if params.MinBedrooms != nil {
		query = query.Where("listings_normalized.bedrooms >= ?", *params.MinBedrooms)
	}
	return query
}

// --- Zone membership --------------------------------------------------------

func (s *Store) UpsertZoneMemberships(ctx context.Context, items []models.ZoneMembership) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return createInBatches(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "zone_id"}, {Name: "listing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"match_confidence",
			"matched_at",
		}),
	}), items, 500)
}

// --- Nightly stats and scores -----------------------------------------------

func (s *Store) UpsertZoneDailyStats(ctx context.Context, item *models.ZoneDailyStats) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "zone_id"}, {Name: "stats_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"eligible_buy_count",
			"eligible_rent_count",
			"p10_ratio_years",
			"p50_ratio_years",
			"p90_ratio_years",
			"median_rent_eur_m2",
			"min_sample_used",
			"computed_at",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetZoneDailyStats(ctx context.Context, zoneID uint64, statsDate time.Time) (*models.ZoneDailyStats, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var stats models.ZoneDailyStats
	err := s.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Where("stats_date = ?", statsDate.Format("2006-01-02")).
		First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) ListZoneDailyStats(ctx context.Context, params repository.ListZoneStatsParams) ([]models.ZoneDailyStats, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ZoneDailyStats{})
	if params.ZoneID != nil {
		query = query.Where("zone_id = ?", *params.ZoneID)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("stats_date >= ?", params.Since.Format("2006-01-02"))
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("stats_date <= ?", params.Until.Format("2006-01-02"))
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.ZoneDailyStats
	if err := query.Order("stats_date desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertListingScores(ctx context.Context, items []models.ListingScore) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return createInBatches(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "zone_id"}, {Name: "listing_id"}, {Name: "stats_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"estimated_monthly_rent_eur",
			"rent_source",
			"ratio_years",
			"is_deal_p10",
			"rank_in_zone",
		}),
	}), items, 200)
}

func (s *Store) ListListingScores(ctx context.Context, params repository.ListScoresParams) ([]models.ListingScore, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := scoresQuery(s.db.WithContext(ctx), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "stats_date")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.ListingScore
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountListingScores(ctx context.Context, params repository.ListScoresParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := scoresQuery(s.db.WithContext(ctx), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func scoresQuery(db *gorm.DB, params repository.ListScoresParams) *gorm.DB {
	query := db.Model(&models.ListingScore{})
	if params.ZoneID != nil {
		query = query.Where("zone_id = ?", *params.ZoneID)
	}
	if params.ListingID != nil {
		query = query.Where("listing_id = ?", *params.ListingID)
	}
	if params.StatsDate != nil && !params.StatsDate.IsZero() {
		query = query.Where("stats_date = ?", params.StatsDate.Format("2006-01-02"))
	}
	if params.DealsOnly {
		query = query.Where("is_deal_p10 = ?", true)
	}
	return query
}

// --- Deal events ------------------------------------------------------------

func (s *Store) InsertDealEvent(ctx context.Context, item *models.DealEvent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// ListDealEventsForPair returns the pair's history newest first, so the
// first row is the latest event.
func (s *Store) ListDealEventsForPair(ctx context.Context, zoneID, listingID uint64) ([]models.DealEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.DealEvent
	if err := s.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Where("listing_id = ?", listingID).
		Order("triggered_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListDealEvents(ctx context.Context, params repository.ListDealEventsParams) ([]models.DealEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := dealEventsQuery(s.db.WithContext(ctx), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "triggered_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.DealEvent
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountDealEvents(ctx context.Context, params repository.ListDealEventsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := dealEventsQuery(s.db.WithContext(ctx), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func dealEventsQuery(db *gorm.DB, params repository.ListDealEventsParams) *gorm.DB {
	query := db.Model(&models.DealEvent{})
	if params.ZoneID != nil {
		query = query.Where("zone_id = ?", *params.ZoneID)
	}
	if params.ListingID != nil {
		query = query.Where("listing_id = ?", *params.ListingID)
	}
	if params.TriggerType != nil && strings.TrimSpace(*params.TriggerType) != "" {
		query = query.Where("trigger_type = ?", strings.TrimSpace(*params.TriggerType))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("triggered_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) ListUnnotifiedPushEvents(ctx context.Context) ([]models.DealEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.DealEvent
	if err := s.db.WithContext(ctx).
		Where("was_notified_push = ?", false).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) MarkDealEventPushNotified(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.DealEvent{}).
		Where("id = ?", id).
		Update("was_notified_push", true).Error
}

// --- Device tokens ----------------------------------------------------------

func (s *Store) UpsertDeviceToken(ctx context.Context, item *models.DeviceToken) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_token"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"platform",
			"is_active",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListActiveDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.DeviceToken
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeactivateDeviceToken(ctx context.Context, token string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.DeviceToken{}).
		Where("device_token = ?", token).
		Update("is_active", false).Error
}

// --- Pipeline runs ----------------------------------------------------------

func (s *Store) InsertPipelineRun(ctx context.Context, item *models.PipelineRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdatePipelineRun(ctx context.Context, item *models.PipelineRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) GetPipelineRunByRunID(ctx context.Context, runID string) (*models.PipelineRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var run models.PipelineRun
	err := s.db.WithContext(ctx).First(&run, "run_id = ?", runID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) ListPipelineRuns(ctx context.Context, params repository.ListPipelineRunsParams) ([]models.PipelineRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.PipelineRun{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "started_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.PipelineRun
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.CreateInBatches(items[i:end], batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

var _ repository.Repository = (*Store)(nil)
