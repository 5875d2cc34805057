package models

import (
	"time"

	"altrion/internal/loan"
	"altrion/internal/uuid"

	"gorm.io/gorm"
)

// LoanApplication is a submitted application. The figures and assets are
// copied at submission and never recomputed; only Status changes afterwards.
type LoanApplication struct {
	ID              string                 `gorm:"primaryKey;size:12" json:"id"`
	UserID          string                 `gorm:"type:uuid;not null;index" json:"-"`
	Status          loan.Status            `gorm:"not null;default:'pending';index" json:"status"`
	TotalCollateral float64                `gorm:"not null" json:"total_collateral"`
	LoanAmount      float64                `gorm:"not null" json:"loan_amount"`
	MaxLoanAmount   float64                `gorm:"not null" json:"max_loan_amount"`
	InterestRate    float64                `gorm:"not null" json:"interest_rate"`
	LTV             float64                `gorm:"column:ltv;not null" json:"ltv"`
	TermMonths      int                    `gorm:"not null" json:"term_months"`
	SubmittedAt     time.Time              `gorm:"not null" json:"submitted_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	SelectedAssets  []LoanApplicationAsset `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"selected_assets"`
}

// LoanApplicationAsset is one pledged asset as it was at submission.
type LoanApplicationAsset struct {
	ID            string  `gorm:"type:uuid;primaryKey" json:"-"`
	ApplicationID string  `gorm:"not null;index" json:"-"`
	Position      int     `gorm:"not null" json:"-"`
	Name          string  `gorm:"not null" json:"name"`
	Symbol        string  `gorm:"not null" json:"symbol"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Value         float64 `gorm:"not null" json:"value"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (a *LoanApplicationAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New()
	}
	return nil
}
