package models

import (
	"time"

	"altrion/internal/collateral"
	"altrion/internal/portfolio"
)

// Holding is one position reported by a linked platform. A platform's
// holdings are replaced as a whole on every sync, never edited in place.
type Holding struct {
	Base
	UserID    string              `gorm:"type:uuid;not null;index:idx_holdings_user_platform" json:"user_id"`
	Platform  string              `gorm:"not null;index:idx_holdings_user_platform" json:"platform"`
	Symbol    string              `gorm:"not null" json:"symbol"`
	Name      string              `gorm:"not null" json:"name"`
	Type      portfolio.AssetType `gorm:"not null" json:"type"`
	Amount    float64             `gorm:"not null" json:"amount"`
	Price     float64             `gorm:"not null" json:"price"`
	Change24h float64             `gorm:"column:change_24h;not null;default:0" json:"change_24h"`
	FetchedAt time.Time           `gorm:"not null" json:"fetched_at"`
}

// Value returns amount × price.
func (h *Holding) Value() float64 {
	return h.Amount * h.Price
}

// ToDomain converts the row to the aggregator's holding type.
func (h *Holding) ToDomain() portfolio.Holding {
	return portfolio.Holding{
		ID:        h.ID,
		Symbol:    h.Symbol,
		Name:      h.Name,
		Type:      h.Type,
		Amount:    h.Amount,
		Price:     h.Price,
		Change24h: h.Change24h,
		Platform:  h.Platform,
	}
}

// ToCollateralAsset converts the row to a pledgeable catalog entry.
func (h *Holding) ToCollateralAsset() collateral.Asset {
	return collateral.Asset{
		ID:     h.ID,
		Name:   h.Name,
		Symbol: h.Symbol,
		Amount: h.Amount,
		Price:  h.Price,
	}
}
