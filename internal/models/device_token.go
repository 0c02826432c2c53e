package models

import "time"

type DeviceToken struct {
	ID       uint64  `gorm:"primaryKey;autoIncrement"`
	UserID   string  `gorm:"type:varchar(100);not null;index"`
	Token    string  `gorm:"column:device_token;type:text;not null;uniqueIndex"`
	Platform *string `gorm:"type:varchar(20)"`
	IsActive bool    `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
