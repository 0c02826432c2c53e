package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ZoneDailyStats holds one row per (zone, date), overwritten idempotently
// when a day is re-run. Percentiles stay null for zones with no scorable
// buy listings; the p10 slot carries the p20 value under the low-sample
// fallback, flagged by MinSampleUsed.
type ZoneDailyStats struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ZoneID    uint64    `gorm:"not null;uniqueIndex:idx_zone_stats_date;index"`
	StatsDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_zone_stats_date;index"`

	EligibleBuyCount  int `gorm:"not null;default:0"`
	EligibleRentCount int `gorm:"not null;default:0"`

	P10RatioYears   *decimal.Decimal `gorm:"column:p10_ratio_years;type:numeric(12,4)"`
	P50RatioYears   *decimal.Decimal `gorm:"column:p50_ratio_years;type:numeric(12,4)"`
	P90RatioYears   *decimal.Decimal `gorm:"column:p90_ratio_years;type:numeric(12,4)"`
	MedianRentEURM2 *decimal.Decimal `gorm:"column:median_rent_eur_m2;type:numeric(10,2)"`

	MinSampleUsed bool `gorm:"not null;default:false"`

	ComputedAt time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (ZoneDailyStats) TableName() string {
	return "zone_daily_stats"
}
