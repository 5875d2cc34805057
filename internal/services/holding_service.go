package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"altrion/internal/connect"
	apperrors "altrion/internal/errors"
	"altrion/internal/models"
	"altrion/internal/pagination"
	"altrion/internal/portfolio"
)

// holdingService stores platform snapshots and aggregates them.
type holdingService struct {
	db *gorm.DB
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db}
}

// ReplacePlatformHoldings swaps the user's holdings on one platform for a
// fresh snapshot. Collateral pledged against a symbol that is still held on
// the platform moves to the new row, clamped to the new amount; pledges on
// symbols that disappeared are dropped.
func (s *holdingService) ReplacePlatformHoldings(userID, platform string, inputs []HoldingInput) ([]models.Holding, error) {
	if _, ok := connect.LookupPlatform(platform); !ok {
		return nil, apperrors.WithMessage(apperrors.ErrUnknownPlatform, "Unknown platform: "+platform)
	}
	for i := range inputs {
		if err := validateHoldingInput(inputs[i]); err != nil {
			return nil, err
		}
	}

	var user models.User
	if err := s.db.Select("id").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fetchedAt := time.Now()
	created := make([]models.Holding, 0, len(inputs))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var previous []models.Holding
		if err := tx.Where("user_id = ? AND platform = ?", userID, platform).Find(&previous).Error; err != nil {
			return err
		}

		oldIDs := make([]string, 0, len(previous))
		oldSymbol := make(map[string]string, len(previous))
		for _, h := range previous {
			oldIDs = append(oldIDs, h.ID)
			oldSymbol[h.ID] = h.Symbol
		}

		pledgedBySymbol := make(map[string]float64)
		if len(oldIDs) > 0 {
			var selections []models.CollateralSelection
			if err := tx.Where("user_id = ? AND holding_id IN ?", userID, oldIDs).Find(&selections).Error; err != nil {
				return err
			}
			for _, sel := range selections {
				pledgedBySymbol[oldSymbol[sel.HoldingID]] += sel.Quantity
			}

			if err := tx.Where("user_id = ? AND holding_id IN ?", userID, oldIDs).Delete(&models.CollateralSelection{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", oldIDs).Delete(&models.Holding{}).Error; err != nil {
				return err
			}
		}

		for _, in := range inputs {
			created = append(created, models.Holding{
				UserID:    userID,
				Platform:  platform,
				Symbol:    strings.TrimSpace(in.Symbol),
				Name:      strings.TrimSpace(in.Name),
				Type:      in.Type,
				Amount:    in.Amount,
				Price:     in.Price,
				Change24h: in.Change24h,
				FetchedAt: fetchedAt,
			})
		}
		if len(created) == 0 {
			return nil
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for _, h := range created {
			qty, ok := pledgedBySymbol[h.Symbol]
			if !ok {
				continue
			}
			delete(pledgedBySymbol, h.Symbol)
			sel := models.CollateralSelection{
				UserID:    userID,
				HoldingID: h.ID,
				Quantity:  math.Min(qty, h.Amount),
			}
			if err := tx.Create(&sel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return created, nil
}

func validateHoldingInput(in HoldingInput) error {
	switch {
	case strings.TrimSpace(in.Symbol) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	case !in.Type.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be one of crypto, stock, stablecoin")
	case !isNonNegative(in.Amount):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative number")
	case !isNonNegative(in.Price):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price must be a non-negative number")
	}
	return nil
}

func isNonNegative(f float64) bool {
	return f >= 0 && !math.IsInf(f, 1)
}

// GetHoldings lists raw holdings, optionally filtered by type.
func (s *holdingService) GetHoldings(userID string, assetType portfolio.AssetType, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error) {
	query := s.db.Model(&models.Holding{}).Where("user_id = ?", userID)
	if assetType != "" {
		query = query.Where("type = ?", assetType)
	}
	query = query.Order("platform ASC, symbol ASC")

	result, err := pagination.Find[models.Holding](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetPortfolio aggregates the user's holdings by symbol.
func (s *holdingService) GetPortfolio(userID string, assetType portfolio.AssetType) (*PortfolioView, error) {
	rows, err := loadHoldings(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holdings := make([]portfolio.Holding, len(rows))
	for i := range rows {
		holdings[i] = rows[i].ToDomain()
	}
	holdings = portfolio.Filter(holdings, assetType)

	assets := portfolio.Aggregate(holdings)
	divergences := portfolio.Divergences(holdings)
	if divergences == nil {
		divergences = []portfolio.Divergence{}
	}

	return &PortfolioView{
		Summary:     portfolio.Summarize(assets),
		Assets:      assets,
		Divergences: divergences,
	}, nil
}

// loadHoldings returns the user's holdings in insertion order.
func loadHoldings(db *gorm.DB, userID string) ([]models.Holding, error) {
	var rows []models.Holding
	err := db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}
