package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	ListingTypeBuy  = "buy"
	ListingTypeRent = "rent"
)

// Listing is a deduplicated, normalized offer. Identity is (source,
// external_id) when the source exposes stable ids, else the lowercased url;
// both are resolved in application code before writes, so neither carries a
// unique constraint here.
type Listing struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Source      string  `gorm:"type:varchar(50);not null;index:idx_listing_source_ext"`
	ListingType string  `gorm:"type:varchar(10);not null;index"`
	ExternalID  *string `gorm:"type:varchar(100);index:idx_listing_source_ext"`
	URL         *string `gorm:"type:text;index"`
	Title       *string `gorm:"type:text"`

	PriceEUR     decimal.Decimal  `gorm:"column:price_eur;type:numeric(14,2);not null"`
	LastPriceEUR *decimal.Decimal `gorm:"column:last_price_eur;type:numeric(14,2)"`
	SizeM2       *decimal.Decimal `gorm:"column:size_m2;type:numeric(10,2)"`
	Bedrooms     *int
	Bathrooms    *int

	Lat    *float64
	Lng    *float64
	GeoKey string `gorm:"type:varchar(12);index"`

	LocationText *string `gorm:"type:text"`
	ContactPhone *string `gorm:"type:varchar(50)"`
	ContactEmail *string `gorm:"type:varchar(120)"`

	QualityFlags datatypes.JSON `gorm:"type:jsonb"`
	IsActive     bool           `gorm:"not null;default:true;index"`

	FirstSeenAt time.Time `gorm:"type:timestamptz;not null"`
	LastSeenAt  time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listings_normalized"
}
