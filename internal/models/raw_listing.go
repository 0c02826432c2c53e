package models

import (
	"time"

	"gorm.io/datatypes"
)

// RawListing stores one fetched snapshot per distinct payload. The
// (source, content_hash) unique index is what dedupes repeat snapshots.
type RawListing struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement"`
	Source      string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_raw_source_hash"`
	ContentHash string         `gorm:"type:char(64);not null;uniqueIndex:idx_raw_source_hash"`
	ExternalID  *string        `gorm:"type:varchar(100);index"`
	URL         *string        `gorm:"type:text"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	Status      string         `gorm:"type:varchar(20);not null;default:ok"`
	FetchedAt   time.Time      `gorm:"type:timestamptz;not null"`
}

func (RawListing) TableName() string {
	return "listings_raw"
}
