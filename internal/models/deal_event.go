package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TriggerTypeP10Deal   = "p10_deal"
	TriggerTypePriceDrop = "price_drop"
)

// DealEvent rows are append-only history per (zone, listing); only the
// notification flags are ever updated.
type DealEvent struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ZoneID    uint64 `gorm:"not null;index:idx_event_zone_listing"`
	ListingID uint64 `gorm:"not null;index:idx_event_zone_listing"`

	TriggerType string           `gorm:"type:varchar(20);not null;index"`
	RatioYears  *decimal.Decimal `gorm:"type:numeric(12,4)"`
	PriceEUR    *decimal.Decimal `gorm:"column:price_eur;type:numeric(14,2)"`

	TriggeredAt time.Time `gorm:"type:timestamptz;not null;index"`

	WasNotifiedPush  bool `gorm:"not null;default:false;index"`
	WasNotifiedEmail bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (DealEvent) TableName() string {
	return "deal_events"
}
