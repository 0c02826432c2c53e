package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ZoneTypeRadius  = "radius"
	ZoneTypePolygon = "polygon"
	ZoneTypeAdmin   = "admin"
)

// Zone is a user-defined matching region. Exactly one of the three shapes
// is meaningful depending on ZoneType: center+radius, a GeoJSON polygon, or
// a set of administrative-area selections. Zones are read-only to the
// scoring pass.
type Zone struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	UserID   string `gorm:"type:varchar(100);not null;index"`
	Name     string `gorm:"type:varchar(120);not null"`
	ZoneType string `gorm:"type:varchar(20);not null;index"`

	CenterLat    *float64
	CenterLng    *float64
	RadiusMeters *float64

	PolygonGeoJSON datatypes.JSON `gorm:"column:polygon_geojson;type:jsonb"`
	AdminCodes     datatypes.JSON `gorm:"type:jsonb"`
	Filters        datatypes.JSON `gorm:"type:jsonb"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Zone) TableName() string {
	return "zones"
}
