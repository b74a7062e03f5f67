package model

import (
	"time"

	"gorm.io/gorm"
)

// User is an account record. PasswordHash is a bcrypt hash; the raw password
// never leaves the auth service.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:60;not null"`
	IsAdmin      bool   `json:"isAdmin" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"-" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"-" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

// Role returns the role string exposed to clients.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

// ActivityLog records a user-visible action for the audit trail.
type ActivityLog struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"userId" gorm:"size:32;index"`
	Action string `json:"action" gorm:"size:255;not null"`

	CreatedAt time.Time `json:"timestamp" gorm:"column:created_at"`
}
