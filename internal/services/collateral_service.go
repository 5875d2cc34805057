package services

import (
	"errors"

	"gorm.io/gorm"

	"altrion/internal/collateral"
	apperrors "altrion/internal/errors"
	"altrion/internal/models"
	"altrion/internal/portfolio"
)

// collateralService keeps each user's collateral selection in the database
// and applies changes through collateral.Selector.
type collateralService struct {
	db     *gorm.DB
	policy collateral.Policy
}

// NewCollateralService creates a new CollateralServicer.
func NewCollateralService(db *gorm.DB, policy collateral.Policy) CollateralServicer {
	return &collateralService{db: db, policy: policy}
}

// selection is a user's holdings together with a selector restored from
// the persisted pledges.
type selection struct {
	holdings []models.Holding
	selector *collateral.Selector
}

// loadSelection restores the user's selector. Pledges whose holding no
// longer exists are ignored.
func loadSelection(db *gorm.DB, userID string) (*selection, error) {
	holdings, err := loadHoldings(db, userID)
	if err != nil {
		return nil, err
	}

	catalog := make([]collateral.Asset, len(holdings))
	for i := range holdings {
		catalog[i] = holdings[i].ToCollateralAsset()
	}
	sel := collateral.NewSelector(catalog)

	var pledges []models.CollateralSelection
	if err := db.Where("user_id = ?", userID).Find(&pledges).Error; err != nil {
		return nil, err
	}
	for _, p := range pledges {
		if err := sel.Restore(p.HoldingID, p.Quantity); err != nil && !errors.Is(err, collateral.ErrUnknownAsset) {
			return nil, err
		}
	}

	return &selection{holdings: holdings, selector: sel}, nil
}

// saveSelection replaces the user's persisted pledges with the selector's.
func saveSelection(tx *gorm.DB, userID string, sel *collateral.Selector) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.CollateralSelection{}).Error; err != nil {
		return err
	}

	entries := sel.Entries()
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.CollateralSelection, len(entries))
	for i, e := range entries {
		rows[i] = models.CollateralSelection{UserID: userID, HoldingID: e.Asset.ID, Quantity: e.Quantity}
	}
	return tx.Create(&rows).Error
}

// mutate loads the selection, applies fn and persists the result atomically.
func (s *collateralService) mutate(userID string, fn func(*selection) error) (*CollateralView, error) {
	var view *CollateralView
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := loadSelection(tx, userID)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		if err := saveSelection(tx, userID, current.selector); err != nil {
			return err
		}
		view = s.view(current)
		return nil
	})
	if err != nil {
		return nil, translateCollateralError(err)
	}
	return view, nil
}

func translateCollateralError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, collateral.ErrUnknownAsset):
		return apperrors.ErrHoldingNotFound
	case errors.Is(err, collateral.ErrNotSelected):
		return apperrors.ErrAssetNotSelected
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func (s *collateralService) view(current *selection) *CollateralView {
	sel := current.selector
	items := make([]CollateralItem, len(current.holdings))
	for i, h := range current.holdings {
		item := CollateralItem{
			HoldingID: h.ID,
			Platform:  h.Platform,
			Symbol:    h.Symbol,
			Name:      h.Name,
			Type:      h.Type,
			Available: h.Amount,
			Price:     h.Price,
		}
		if qty, ok := sel.Quantity(h.ID); ok {
			item.Selected = true
			item.Quantity = qty
			item.Value = qty * h.Price
			if h.Amount > 0 {
				item.Percentage = qty / h.Amount * 100
			}
		}
		items[i] = item
	}

	return &CollateralView{
		Items:         items,
		SelectedCount: sel.Len(),
		Eligibility:   collateral.ComputeEligibility(sel, s.policy),
	}
}

// GetSelection returns the current selection and eligibility.
func (s *collateralService) GetSelection(userID string) (*CollateralView, error) {
	current, err := loadSelection(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.view(current), nil
}

// Select pledges the full amount of a holding.
func (s *collateralService) Select(userID, holdingID string) (*CollateralView, error) {
	return s.mutate(userID, func(c *selection) error {
		return c.selector.Select(holdingID)
	})
}

// Deselect removes a holding from the selection.
func (s *collateralService) Deselect(userID, holdingID string) (*CollateralView, error) {
	return s.mutate(userID, func(c *selection) error {
		if !c.selector.Has(holdingID) {
			return collateral.ErrUnknownAsset
		}
		c.selector.Deselect(holdingID)
		return nil
	})
}

// SetAmount pledges an explicit quantity, clamped to the holding amount.
func (s *collateralService) SetAmount(userID, holdingID string, amount float64) (*CollateralView, error) {
	return s.mutate(userID, func(c *selection) error {
		return c.selector.SetAmount(holdingID, amount)
	})
}

// SetPercentage pledges a percentage of the holding amount.
func (s *collateralService) SetPercentage(userID, holdingID string, percent float64) (*CollateralView, error) {
	return s.mutate(userID, func(c *selection) error {
		return c.selector.SetPercentage(holdingID, percent)
	})
}

// SelectAll toggles every holding of the given type (all types when empty).
func (s *collateralService) SelectAll(userID string, assetType portfolio.AssetType) (*CollateralView, error) {
	return s.mutate(userID, func(c *selection) error {
		c.selector.SelectAll(holdingIDs(c.holdings, assetType))
		return nil
	})
}

// DeselectAll clears every holding of the given type (all types when empty).
func (s *collateralService) DeselectAll(userID string, assetType portfolio.AssetType) (*CollateralView, error) {
	return s.mutate(userID, func(c *selection) error {
		c.selector.DeselectAll(holdingIDs(c.holdings, assetType))
		return nil
	})
}

// Review previews the snapshot a submission would capture.
func (s *collateralService) Review(userID string) (*collateral.Snapshot, error) {
	current, err := loadSelection(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if current.selector.Len() == 0 {
		return nil, apperrors.ErrEmptyCollateral
	}
	snapshot := collateral.BuildSnapshot(current.selector, s.policy)
	return &snapshot, nil
}

func holdingIDs(holdings []models.Holding, assetType portfolio.AssetType) []string {
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if assetType == "" || h.Type == assetType {
			ids = append(ids, h.ID)
		}
	}
	return ids
}
