package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RentSourceDirectMatch = "direct_match"
	RentSourceZoneModel   = "zone_model"
)

// ListingScore is one scored buy listing per (zone, listing, date). Rows
// exist only for listings that received a rent estimate.
type ListingScore struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ZoneID    uint64    `gorm:"not null;uniqueIndex:idx_score_zone_listing_date;index"`
	ListingID uint64    `gorm:"not null;uniqueIndex:idx_score_zone_listing_date;index"`
	StatsDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_score_zone_listing_date;index"`

	EstimatedMonthlyRentEUR decimal.Decimal `gorm:"column:estimated_monthly_rent_eur;type:numeric(10,2);not null"`
	RentSource              string          `gorm:"type:varchar(20);not null"`
	RatioYears              decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	IsDealP10               bool            `gorm:"column:is_deal_p10;not null;default:false;index"`
	RankInZone              *int

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (ListingScore) TableName() string {
	return "listing_scoring_daily"
}
