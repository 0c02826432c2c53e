package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RunStatusRunning = "running"
	RunStatusOK      = "ok"
	RunStatusError   = "error"
)

type PipelineRun struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	RunID  string `gorm:"type:uuid;not null;uniqueIndex"`
	Status string `gorm:"type:varchar(20);not null;index"`

	StartedAt  time.Time  `gorm:"type:timestamptz;not null"`
	FinishedAt *time.Time `gorm:"type:timestamptz"`

	StatsJSON datatypes.JSON `gorm:"type:jsonb"`
	LastError *string        `gorm:"type:text"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
