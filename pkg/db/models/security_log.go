package models

import (
	"time"

	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
)

// SecurityLog records one immutable audit entry describing a mutating action.
// Rows are append-only: nothing in the codebase updates or deletes them.
type SecurityLog struct {
	ID               string          `gorm:"column:id;primaryKey"`
	Timestamp        time.Time       `gorm:"column:timestamp;not null"`
	Actor            string          `gorm:"column:actor;not null"`
	Action           string          `gorm:"column:action;not null"`
	Module           string          `gorm:"column:module;not null"`
	IPAddress        string          `gorm:"column:ip_address;not null"`
	Status           enums.LogStatus `gorm:"column:status;not null"`
	Description      string          `gorm:"column:description;not null"`
	TechnicalDetails string          `gorm:"column:technical_details;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime;index"`
}
