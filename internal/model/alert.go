package model

import (
	"time"

	"gorm.io/gorm"
)

// Alert is an advisory record, optionally carrying a weak reference to a
// pending zone that a reviewer should look at.
type Alert struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Type    string `json:"type" gorm:"size:50"`
	Message string `json:"message" gorm:"type:text"`

	// Weak reference; the zone may have been dissolved since the alert
	// was raised.
	ZoneID   string `json:"zoneId,omitempty" gorm:"size:32;index"`
	ZoneKind Kind   `json:"zoneKind,omitempty" gorm:"size:16"`

	CreatedAt time.Time      `json:"timestamp" gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}
