package models

import "time"

// CollateralSelection is one pledged holding of a user's in-progress loan
// application. Absence of a row means the holding is not selected.
type CollateralSelection struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	HoldingID string    `gorm:"type:uuid;primaryKey" json:"holding_id"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
