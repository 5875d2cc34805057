package models

import (
	"time"

	"altrion/internal/connect"
)

// PlatformConnection is the latest known link state of a platform for a user.
type PlatformConnection struct {
	Base
	UserID      string         `gorm:"type:uuid;not null;uniqueIndex:uq_platform_connections_user_platform" json:"-"`
	PlatformID  string         `gorm:"not null;uniqueIndex:uq_platform_connections_user_platform" json:"platform_id"`
	Status      connect.Status `gorm:"not null" json:"status"`
	LastError   string         `json:"last_error,omitempty"`
	Attempts    int            `gorm:"not null;default:0" json:"attempts"`
	ConnectedAt *time.Time     `json:"connected_at,omitempty"`
}
