package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/TSCosta20/housing-project/internal/alert"
	"github.com/TSCosta20/housing-project/internal/collector"
	"github.com/TSCosta20/housing-project/internal/dedupe"
	"github.com/TSCosta20/housing-project/internal/models"
	"github.com/TSCosta20/housing-project/internal/normalize"
	"github.com/TSCosta20/housing-project/internal/push"
	"github.com/TSCosta20/housing-project/internal/repository"
	"github.com/TSCosta20/housing-project/internal/scoring"
	"github.com/TSCosta20/housing-project/internal/stream"
	"github.com/TSCosta20/housing-project/internal/zone"
)

var ErrAlreadyRunning = errors.New("pipeline run already in progress")

// Pipeline is the nightly ingest-match-score-alert job. One run collects
// every enabled source, refreshes zone memberships, recomputes per-zone
// stats and scores, triggers deal events and finishes with the push pass.
type Pipeline struct {
	Repo       repository.Repository
	Matcher    *zone.Matcher
	Hub        *stream.Hub
	Notifier   *push.Notifier
	HTTPClient *http.Client
	Logger     *zap.Logger

	// Timezone anchors stats_date; nil means UTC.
	Timezone     *time.Location
	CooldownDays int
	PriceDropPct float64
	MinSample    int

	running atomic.Bool
}

// RunResult is the per-run counter set, also persisted as the run's stats.
type RunResult struct {
	RunID     string `json:"run_id"`
	StatsDate string `json:"stats_date"`

	RawItems        int `json:"raw_items"`
	InvalidItems    int `json:"invalid_items"`
	Listings        int `json:"listings"`
	SourceErrors    int `json:"source_errors"`
	MembershipRows  int `json:"membership_rows"`
	ZonesScored     int `json:"zones_scored"`
	ZoneErrors      int `json:"zone_errors"`
	ScoreRows       int `json:"score_rows"`
	DealEvents      int `json:"deal_events"`
	PriceDropEvents int `json:"price_drop_events"`
	PushSent        int `json:"push_sent"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// RunOnce executes a full pipeline pass. Only one run may be in flight per
// process; concurrent callers get ErrAlreadyRunning. Source and zone
// failures are isolated and counted, repository failures abort the run.
func (p *Pipeline) RunOnce(ctx context.Context) (*RunResult, error) {
	if p == nil || p.Repo == nil {
		return nil, errors.New("pipeline is not configured")
	}
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer p.running.Store(false)

	now := time.Now().UTC()
	result := &RunResult{
		RunID:     uuid.NewString(),
		StatsDate: p.statsDate(now).Format("2006-01-02"),
		StartedAt: now,
	}
	run := &models.PipelineRun{RunID: result.RunID, Status: models.RunStatusRunning, StartedAt: now}
	if err := p.Repo.InsertPipelineRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record pipeline run: %w", err)
	}

	runErr := p.run(ctx, now, result)

	finished := time.Now().UTC()
	result.FinishedAt = finished
	run.FinishedAt = &finished
	run.Status = models.RunStatusOK
	if runErr != nil {
		run.Status = models.RunStatusError
		msg := runErr.Error()
		run.LastError = &msg
	}
	if stats, err := json.Marshal(result); err == nil {
		run.StatsJSON = datatypes.JSON(stats)
	}
	if err := p.Repo.UpdatePipelineRun(ctx, run); err != nil {
		p.logger().Warn("pipeline run finalize failed", zap.String("run_id", result.RunID), zap.Error(err))
	}
	return result, runErr
}

func (p *Pipeline) run(ctx context.Context, now time.Time, result *RunResult) error {
	sources, err := p.Repo.ListSources(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	zones, err := p.Repo.ListActiveZones(ctx)
	if err != nil {
		return fmt.Errorf("failed to list zones: %w", err)
	}

	listings, err := p.collectListings(ctx, sources, now, result)
	if err != nil {
		return err
	}
	byZone, err := p.matchZones(ctx, zones, listings, now, result)
	if err != nil {
		return err
	}

	statsDate := p.statsDate(now)
	for i := range zones {
		if err := p.scoreZone(ctx, &zones[i], byZone[zones[i].ID], statsDate, now, result); err != nil {
			result.ZoneErrors++
			p.logger().Warn("zone scoring failed", zap.Uint64("zone_id", zones[i].ID), zap.Error(err))
		}
	}

	if p.Notifier != nil {
		sent, err := p.Notifier.SendPending(ctx)
		if err != nil {
			p.logger().Warn("push pass failed", zap.Error(err))
		}
		result.PushSent = sent
	}
	return nil
}

// collectListings fetches every enabled source and upserts the normalized
// rows. The returned slice holds one listing per identity, first-seen
// order, latest snapshot winning when a run repeats an offer.
func (p *Pipeline) collectListings(ctx context.Context, sources []models.Source, now time.Time, result *RunResult) ([]*models.Listing, error) {
	var ordered []*models.Listing
	position := map[uint64]int{}

	for _, source := range sources {
		c := collector.Build(source, p.HTTPClient, p.Logger)
		if c == nil {
			continue
		}
		items, err := c.Collect(ctx)
		if err != nil {
			result.SourceErrors++
			p.logger().Error("collector fetch failed", zap.String("source", source.Name), zap.Error(err))
			continue
		}

		raws := make([]models.RawListing, 0, len(items))
		normalized := 0
		for _, item := range items {
			raw := models.RawListing{
				Source:      item.Source,
				ContentHash: normalize.ContentHash(item.Source, item.Input.ExternalID, item.Input.URL, item.Payload),
				ExternalID:  item.Input.ExternalID,
				URL:         item.Input.URL,
				Status:      "ok",
				FetchedAt:   now,
			}
			if payload, err := json.Marshal(item.Payload); err == nil {
				raw.Payload = payload
			}
			raws = append(raws, raw)

			listing, err := normalize.BuildListing(item.Input, now)
			if err != nil {
				result.InvalidItems++
				continue
			}
			if err := p.storeListing(ctx, listing); err != nil {
				return nil, err
			}
			if idx, ok := position[listing.ID]; ok {
				ordered[idx] = listing
			} else {
				position[listing.ID] = len(ordered)
				ordered = append(ordered, listing)
			}
			normalized++
		}
		if err := p.Repo.InsertRawListings(ctx, raws); err != nil {
			return nil, fmt.Errorf("failed to store raw listings for %s: %w", source.Name, err)
		}
		result.RawItems += len(items)
		p.logger().Info("source collected",
			zap.String("source", source.Name),
			zap.Int("fetched", len(items)),
			zap.Int("normalized", normalized))
	}
	result.Listings = len(ordered)
	return ordered, nil
}

// storeListing resolves listing identity against stored rows and writes by
// primary key: update in place when a candidate matches, insert otherwise.
func (p *Pipeline) storeListing(ctx context.Context, listing *models.Listing) error {
	candidates, err := p.Repo.FindListingCandidates(ctx, listing.Source, listing.ExternalID, listing.URL)
	if err != nil {
		return fmt.Errorf("failed to load dedupe candidates: %w", err)
	}
	existing := dedupe.ChooseExisting(candidates, listing.Source, listing.ExternalID, listing.URL)
	if existing == nil {
		return p.Repo.CreateListing(ctx, listing)
	}

	listing.ID = existing.ID
	listing.FirstSeenAt = existing.FirstSeenAt
	listing.CreatedAt = existing.CreatedAt
	if existing.PriceEUR.Equal(listing.PriceEUR) {
		listing.LastPriceEUR = existing.LastPriceEUR
	} else {
		previous := existing.PriceEUR
		listing.LastPriceEUR = &previous
	}
	return p.Repo.UpdateListing(ctx, listing)
}

func (p *Pipeline) matchZones(ctx context.Context, zones []models.Zone, listings []*models.Listing, now time.Time, result *RunResult) (map[uint64][]*models.Listing, error) {
	matcher := p.Matcher
	if matcher == nil {
		matcher = &zone.Matcher{}
	}

	byZone := map[uint64][]*models.Listing{}
	var rows []models.ZoneMembership
	for _, listing := range listings {
		for i := range zones {
			if !matcher.Matches(&zones[i], listing) {
				continue
			}
			byZone[zones[i].ID] = append(byZone[zones[i].ID], listing)
			rows = append(rows, models.ZoneMembership{
				ZoneID:          zones[i].ID,
				ListingID:       listing.ID,
				MatchConfidence: 1,
				MatchedAt:       now,
			})
		}
	}
	if err := p.Repo.UpsertZoneMemberships(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to store zone memberships: %w", err)
	}
	result.MembershipRows = len(rows)
	return byZone, nil
}

// scoreZone recomputes one zone for the day: rent model, estimates, stats,
// ranking and alert decisions. Stats are written even when nothing is
// scorable so the day still has a row recording the counts.
func (p *Pipeline) scoreZone(ctx context.Context, z *models.Zone, members []*models.Listing, statsDate, now time.Time, result *RunResult) error {
	var buys, rents []*models.Listing
	for _, listing := range members {
		switch listing.ListingType {
		case models.ListingTypeBuy:
			buys = append(buys, listing)
		case models.ListingTypeRent:
			rents = append(rents, listing)
		}
	}

	model := scoring.BuildRentModel(rents)

	var ratios []float64
	var scored []*scoring.ScoredListing
	for _, buy := range buys {
		rentEUR, rentSource, ok := scoring.EstimateRent(buy, rents, model.ParishBedroomMedian(buy))
		if !ok || rentEUR <= 0 {
			continue
		}
		ratio := scoring.RatioYears(buy.PriceEUR.InexactFloat64(), rentEUR)
		ratios = append(ratios, ratio)
		scored = append(scored, &scoring.ScoredListing{
			Listing:    buy,
			RentEUR:    rentEUR,
			RentSource: rentSource,
			RatioYears: ratio,
		})
	}

	stats := scoring.BuildZoneStats(ratios, len(rents), model.MedianRentEURM2, p.MinSample)
	if err := p.Repo.UpsertZoneDailyStats(ctx, &models.ZoneDailyStats{
		ZoneID:            z.ID,
		StatsDate:         statsDate,
		EligibleBuyCount:  stats.EligibleBuyCount,
		EligibleRentCount: stats.EligibleRentCount,
		P10RatioYears:     roundedDecimal(stats.P10RatioYears, 4),
		P50RatioYears:     roundedDecimal(stats.P50RatioYears, 4),
		P90RatioYears:     roundedDecimal(stats.P90RatioYears, 4),
		MedianRentEURM2:   roundedDecimal(stats.MedianRentEURM2, 2),
		MinSampleUsed:     stats.MinSampleUsed,
		ComputedAt:        now,
	}); err != nil {
		return fmt.Errorf("failed to store zone stats: %w", err)
	}
	result.ZonesScored++

	if stats.P10RatioYears != nil {
		scoring.Rank(scored, *stats.P10RatioYears)
		if err := p.triggerAlerts(ctx, z.ID, scored, now, result); err != nil {
			return err
		}
	}

	scoreRows := make([]models.ListingScore, 0, len(scored))
	for _, row := range scored {
		score := models.ListingScore{
			ZoneID:                  z.ID,
			ListingID:               row.Listing.ID,
			StatsDate:               statsDate,
			EstimatedMonthlyRentEUR: decimal.NewFromFloat(row.RentEUR).Round(2),
			RentSource:              row.RentSource,
			RatioYears:              decimal.NewFromFloat(row.RatioYears).Round(4),
			IsDealP10:               row.IsDealP10,
		}
		if row.Rank > 0 {
			rank := row.Rank
			score.RankInZone = &rank
		}
		scoreRows = append(scoreRows, score)
	}
	if err := p.Repo.UpsertListingScores(ctx, scoreRows); err != nil {
		return fmt.Errorf("failed to store listing scores: %w", err)
	}
	result.ScoreRows += len(scoreRows)
	return nil
}

// triggerAlerts decides events per ranked row against their stored history
// before any of this run's events land, so one run cannot trip its own
// cooldown. Events are inserted immediately and published to the hub.
func (p *Pipeline) triggerAlerts(ctx context.Context, zoneID uint64, scored []*scoring.ScoredListing, now time.Time, result *RunResult) error {
	cooldown := p.CooldownDays
	if cooldown <= 0 {
		cooldown = alert.DefaultCooldownDays
	}
	dropPct := p.PriceDropPct
	if dropPct <= 0 {
		dropPct = alert.DefaultDropThresholdPct
	}

	for _, row := range scored {
		previous, err := p.Repo.ListDealEventsForPair(ctx, zoneID, row.Listing.ID)
		if err != nil {
			return fmt.Errorf("failed to load deal events: %w", err)
		}

		if alert.ShouldTriggerP10(row.IsDealP10, previous, now, cooldown) {
			if err := p.insertEvent(ctx, dealEvent(zoneID, row, models.TriggerTypeP10Deal, row.Listing.PriceEUR, now)); err != nil {
				return err
			}
			result.DealEvents++
			continue
		}
		if len(previous) == 0 {
			continue
		}
		previousPrice := 0.0
		if previous[0].PriceEUR != nil {
			previousPrice = previous[0].PriceEUR.InexactFloat64()
		}
		currentPrice := row.Listing.PriceEUR.InexactFloat64()
		if alert.ShouldTriggerPriceDrop(previousPrice, currentPrice, dropPct) {
			if err := p.insertEvent(ctx, dealEvent(zoneID, row, models.TriggerTypePriceDrop, row.Listing.PriceEUR, now)); err != nil {
				return err
			}
			result.PriceDropEvents++
		}
	}
	return nil
}

func (p *Pipeline) insertEvent(ctx context.Context, event *models.DealEvent) error {
	if err := p.Repo.InsertDealEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to store deal event: %w", err)
	}
	p.logger().Info("deal event triggered",
		zap.Uint64("zone_id", event.ZoneID),
		zap.Uint64("listing_id", event.ListingID),
		zap.String("trigger_type", event.TriggerType))
	if p.Hub != nil {
		p.Hub.Publish(*event)
	}
	return nil
}

func dealEvent(zoneID uint64, row *scoring.ScoredListing, triggerType string, price decimal.Decimal, now time.Time) *models.DealEvent {
	ratio := decimal.NewFromFloat(row.RatioYears).Round(4)
	return &models.DealEvent{
		ZoneID:      zoneID,
		ListingID:   row.Listing.ID,
		TriggerType: triggerType,
		RatioYears:  &ratio,
		PriceEUR:    &price,
		TriggeredAt: now,
	}
}

// statsDate is the run date in the configured timezone, stored at UTC
// midnight so the date column compares cleanly.
func (p *Pipeline) statsDate(now time.Time) time.Time {
	loc := p.Timezone
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func roundedDecimal(value *float64, places int32) *decimal.Decimal {
	if value == nil {
		return nil
	}
	d := decimal.NewFromFloat(*value).Round(places)
	return &d
}

func (p *Pipeline) logger() *zap.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}
