package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TSCosta20/housing-project/internal/models"
)

// Repository is the persistence boundary shared by the nightly pipeline,
// the HTTP handlers and the push notifier.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Sources
	UpsertSource(ctx context.Context, item *models.Source) error
	ListSources(ctx context.Context, enabledOnly bool) ([]models.Source, error)

	// Zones
	CreateZone(ctx context.Context, item *models.Zone) error
	UpdateZone(ctx context.Context, item *models.Zone) error
	GetZoneByID(ctx context.Context, id uint64) (*models.Zone, error)
	ListZones(ctx context.Context, params ListZonesParams) ([]models.Zone, error)
	CountZones(ctx context.Context, params ListZonesParams) (int64, error)
	ListActiveZones(ctx context.Context) ([]models.Zone, error)
	SetZoneActive(ctx context.Context, id uint64, active bool) error

	// Raw listings (ingestion audit trail)
	InsertRawListings(ctx context.Context, items []models.RawListing) error

	// Normalized listings
	FindListingCandidates(ctx context.Context, source string, externalID, url *string) ([]models.Listing, error)
	CreateListing(ctx context.Context, item *models.Listing) error
	UpdateListing(ctx context.Context, item *models.Listing) error
	GetListingByID(ctx context.Context, id uint64) (*models.Listing, error)
	ListListingsByIDs(ctx context.Context, ids []uint64) ([]models.Listing, error)
	ListListings(ctx context.Context, params ListListingsParams) ([]models.Listing, error)
	CountListings(ctx context.Context, params ListListingsParams) (int64, error)

	// Zone membership
	UpsertZoneMemberships(ctx context.Context, items []models.ZoneMembership) error

	// Nightly stats and scores
	UpsertZoneDailyStats(ctx context.Context, item *models.ZoneDailyStats) error
	GetZoneDailyStats(ctx context.Context, zoneID uint64, statsDate time.Time) (*models.ZoneDailyStats, error)
	ListZoneDailyStats(ctx context.Context, params ListZoneStatsParams) ([]models.ZoneDailyStats, error)
	UpsertListingScores(ctx context.Context, items []models.ListingScore) error
	ListListingScores(ctx context.Context, params ListScoresParams) ([]models.ListingScore, error)
	CountListingScores(ctx context.Context, params ListScoresParams) (int64, error)

	// Deal events
	InsertDealEvent(ctx context.Context, item *models.DealEvent) error
	ListDealEventsForPair(ctx context.Context, zoneID, listingID uint64) ([]models.DealEvent, error)
	ListDealEvents(ctx context.Context, params ListDealEventsParams) ([]models.DealEvent, error)
	CountDealEvents(ctx context.Context, params ListDealEventsParams) (int64, error)
	ListUnnotifiedPushEvents(ctx context.Context) ([]models.DealEvent, error)
	MarkDealEventPushNotified(ctx context.Context, id uint64) error

	// Device tokens
	UpsertDeviceToken(ctx context.Context, item *models.DeviceToken) error
	ListActiveDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error)
	DeactivateDeviceToken(ctx context.Context, token string) error

	// Pipeline runs
	InsertPipelineRun(ctx context.Context, item *models.PipelineRun) error
	UpdatePipelineRun(ctx context.Context, item *models.PipelineRun) error
	GetPipelineRunByRunID(ctx context.Context, runID string) (*models.PipelineRun, error)
	ListPipelineRuns(ctx context.Context, params ListPipelineRunsParams) ([]models.PipelineRun, error)
}

type ListZonesParams struct {
	Limit    int
	Offset   int
	UserID   *string
	ZoneType *string
	Active   *bool
	OrderBy  string
	Asc      *bool
}

type ListListingsParams struct {
	Limit        int
	Offset       int
	Source       *string
	ListingType  *string
	Active       *bool
	ZoneID       *uint64
	GeoKeyPrefix *string
	MinPriceEUR  *decimal.Decimal
	MaxPriceEUR  *decimal.Decimal
	MinBedrooms  *int
	OrderBy      string
	Asc          *bool
}

type ListZoneStatsParams struct {
	Limit  int
	Offset int
	ZoneID *uint64
	Since  *time.Time
	Until  *time.Time
}

type ListScoresParams struct {
	Limit     int
	Offset    int
	ZoneID    *uint64
	ListingID *uint64
	StatsDate *time.Time
	DealsOnly bool
	OrderBy   string
	Asc       *bool
}

type ListDealEventsParams struct {
	Limit       int
	Offset      int
	ZoneID      *uint64
	ListingID   *uint64
	TriggerType *string
	Since       *time.Time
	OrderBy     string
	Asc         *bool
}

type ListPipelineRunsParams struct {
	Limit   int
	Offset  int
	Status  *string
	OrderBy string
	Asc     *bool
}
