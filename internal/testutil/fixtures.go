package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"altrion/internal/connect"
	"altrion/internal/loan"
	"altrion/internal/models"
	"altrion/internal/portfolio"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a local user with password "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		Provider: models.AuthProviderLocal,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestHolding creates a holding on the given platform.
func CreateTestHolding(t *testing.T, db *gorm.DB, userID, platform, symbol string, assetType portfolio.AssetType, amount, price float64) *models.Holding {
	t.Helper()

	h := &models.Holding{
		UserID:    userID,
		Platform:  platform,
		Symbol:    symbol,
		Name:      symbol + " Token",
		Type:      assetType,
		Amount:    amount,
		Price:     price,
		FetchedAt: time.Now(),
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return h
}

// SelectTestCollateral pledges quantity of a holding.
func SelectTestCollateral(t *testing.T, db *gorm.DB, userID, holdingID string, quantity float64) {
	t.Helper()

	sel := &models.CollateralSelection{UserID: userID, HoldingID: holdingID, Quantity: quantity}
	if err := db.Create(sel).Error; err != nil {
		t.Fatalf("failed to create test collateral selection: %v", err)
	}
}

// CreateTestLoanApplication stores an application with one BTC asset.
func CreateTestLoanApplication(t *testing.T, db *gorm.DB, userID string, status loan.Status) *models.LoanApplication {
	t.Helper()

	id, err := loan.NewID()
	if err != nil {
		t.Fatalf("failed to generate loan id: %v", err)
	}

	now := time.Now()
	app := &models.LoanApplication{
		ID:              id,
		UserID:          userID,
		Status:          status,
		TotalCollateral: 67500,
		LoanAmount:      40500,
		MaxLoanAmount:   40500,
		InterestRate:    5.2,
		LTV:             60,
		TermMonths:      12,
		SubmittedAt:     now,
		UpdatedAt:       now,
		SelectedAssets: []models.LoanApplicationAsset{
			{Position: 0, Name: "Bitcoin", Symbol: "BTC", Amount: 1.5, Value: 67500},
		},
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to create test loan application: %v", err)
	}
	return app
}

// CreateTestPlatformConnection records a linked platform.
func CreateTestPlatformConnection(t *testing.T, db *gorm.DB, userID, platformID string, status connect.Status) *models.PlatformConnection {
	t.Helper()

	pc := &models.PlatformConnection{
		UserID:     userID,
		PlatformID: platformID,
		Status:     status,
		Attempts:   1,
	}
	if status == connect.StatusSuccess {
		now := time.Now()
		pc.ConnectedAt = &now
	}
	if err := db.Create(pc).Error; err != nil {
		t.Fatalf("failed to create test platform connection: %v", err)
	}
	return pc
}
