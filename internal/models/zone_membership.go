package models

import "time"

type ZoneMembership struct {
	ZoneID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	ListingID uint64 `gorm:"primaryKey;autoIncrement:false"`

	MatchConfidence float64   `gorm:"not null;default:1"`
	MatchedAt       time.Time `gorm:"type:timestamptz;not null"`
}

func (ZoneMembership) TableName() string {
	return "listing_zone_membership"
}
