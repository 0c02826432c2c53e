package models

import (
	"time"

	"gorm.io/datatypes"
)

// Source is a configured listings provider. Kind selects the collector
// implementation; Config carries collector-specific settings such as the
// feed URL and the listing type it serves.
type Source struct {
	ID      uint64         `gorm:"primaryKey;autoIncrement"`
	Name    string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Kind    string         `gorm:"type:varchar(30);not null"`
	Config  datatypes.JSON `gorm:"type:jsonb"`
	Enabled bool           `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Source) TableName() string {
	return "sources"
}
