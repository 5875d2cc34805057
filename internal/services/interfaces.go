package services

import (
	"altrion/internal/collateral"
	"altrion/internal/connect"
	"altrion/internal/loan"
	"altrion/internal/models"
	"altrion/internal/pagination"
	"altrion/internal/portfolio"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	FindOrCreateOAuthUser(identity OAuthIdentity) (*models.User, error)
}

// OAuthIdentity is the profile an OAuth provider returned for a sign-in.
type OAuthIdentity struct {
	Provider      models.AuthProvider
	ProviderID    string
	Email         string
	EmailVerified bool
	Name          string
	Avatar        string
}

// HoldingInput is one position reported by a platform sync.
type HoldingInput struct {
	Symbol    string              `json:"symbol" binding:"required,max=20"`
	Name      string              `json:"name" binding:"required,max=100"`
	Type      portfolio.AssetType `json:"type" binding:"required,asset_type"`
	Amount    float64             `json:"amount" binding:"min=0"`
	Price     float64             `json:"price" binding:"min=0"`
	Change24h float64             `json:"change_24h"`
}

// PortfolioView is the aggregated portfolio of one user.
type PortfolioView struct {
	Summary     portfolio.Summary           `json:"summary"`
	Assets      []portfolio.AggregatedAsset `json:"assets"`
	Divergences []portfolio.Divergence      `json:"divergences"`
}

// HoldingServicer defines the contract for holdings and portfolio aggregation.
type HoldingServicer interface {
	ReplacePlatformHoldings(userID, platform string, holdings []HoldingInput) ([]models.Holding, error)
	GetHoldings(userID string, assetType portfolio.AssetType, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error)
	GetPortfolio(userID string, assetType portfolio.AssetType) (*PortfolioView, error)
}

// CollateralItem is one holding in the collateral picker.
type CollateralItem struct {
	HoldingID  string              `json:"holding_id"`
	Platform   string              `json:"platform"`
	Symbol     string              `json:"symbol"`
	Name       string              `json:"name"`
	Type       portfolio.AssetType `json:"type"`
	Available  float64             `json:"available"`
	Price      float64             `json:"price"`
	Selected   bool                `json:"selected"`
	Quantity   float64             `json:"quantity"`
	Value      float64             `json:"value"`
	Percentage float64             `json:"percentage"`
}

// CollateralView is the current selection with live eligibility.
type CollateralView struct {
	Items         []CollateralItem       `json:"items"`
	SelectedCount int                    `json:"selected_count"`
	Eligibility   collateral.Eligibility `json:"eligibility"`
}

// CollateralServicer defines the contract for the per-user collateral selection.
type CollateralServicer interface {
	GetSelection(userID string) (*CollateralView, error)
	Select(userID, holdingID string) (*CollateralView, error)
	Deselect(userID, holdingID string) (*CollateralView, error)
	SetAmount(userID, holdingID string, amount float64) (*CollateralView, error)
	SetPercentage(userID, holdingID string, percent float64) (*CollateralView, error)
	SelectAll(userID string, assetType portfolio.AssetType) (*CollateralView, error)
	DeselectAll(userID string, assetType portfolio.AssetType) (*CollateralView, error)
	Review(userID string) (*collateral.Snapshot, error)
}

// SubmitLoanInput holds the optional overrides of a loan submission.
type SubmitLoanInput struct {
	// LoanAmount defaults to the maximum eligible amount.
	LoanAmount *float64
	// TermMonths defaults to the configured term.
	TermMonths int
}

// LoanServicer defines the contract for the loan application store.
type LoanServicer interface {
	SubmitApplication(userID string, in SubmitLoanInput) (*models.LoanApplication, error)
	GetApplications(userID string, status loan.Status, page pagination.PageRequest) (*pagination.PageResponse[models.LoanApplication], error)
	GetApplicationByID(userID, id string) (*models.LoanApplication, error)
	UpdateApplicationStatus(userID, id string, status loan.Status) (*models.LoanApplication, error)
	CancelApplication(userID, id string) error
	GetSchedule(userID, id string) (*loan.Amortization, error)
}

// ConnectionServicer defines the contract for linking external platforms.
type ConnectionServicer interface {
	StartSession(userID string, platformIDs []string, autoStart bool) (*connect.State, error)
	GetSession(userID string) (*connect.State, error)
	Initiate(userID string, index int) (*connect.State, error)
	Retry(userID string, index int) (*connect.State, error)
	GetLinkedPlatforms(userID string) ([]models.PlatformConnection, error)
	// Wait blocks until every running attempt has resolved.
	Wait()
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
