package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"altrion/internal/collateral"
	apperrors "altrion/internal/errors"
	"altrion/internal/loan"
	"altrion/internal/models"
	"altrion/internal/pagination"
)

const idAttempts = 5

// loanService is the per-user loan application store.
type loanService struct {
	db          *gorm.DB
	policy      collateral.Policy
	defaultTerm int
	strict      bool
}

// NewLoanService creates a new LoanServicer. strict enables the
// pending→approved|rejected→active→completed transition table.
func NewLoanService(db *gorm.DB, policy collateral.Policy, defaultTerm int, strict bool) LoanServicer {
	if defaultTerm < 1 || defaultTerm > loan.MaxTermMonths {
		defaultTerm = 12
	}
	return &loanService{db: db, policy: policy, defaultTerm: defaultTerm, strict: strict}
}

// SubmitApplication snapshots the user's collateral selection into a new
// pending application and clears the selection.
func (s *loanService) SubmitApplication(userID string, in SubmitLoanInput) (*models.LoanApplication, error) {
	term := in.TermMonths
	if term == 0 {
		term = s.defaultTerm
	}
	if term < 1 || term > loan.MaxTermMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "term_months must be between 1 and 360")
	}

	var app *models.LoanApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := loadSelection(tx, userID)
		if err != nil {
			return err
		}
		if current.selector.Len() == 0 {
			return apperrors.ErrEmptyCollateral
		}

		snapshot := collateral.BuildSnapshot(current.selector, s.policy)
		if snapshot.TotalCollateral <= 0 {
			return apperrors.ErrEmptyCollateral
		}

		amount := snapshot.LoanAmount
		if in.LoanAmount != nil {
			amount = *in.LoanAmount
			if math.IsNaN(amount) || amount <= 0 {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "loan_amount must be greater than zero")
			}
			if amount > snapshot.LoanAmount {
				return apperrors.ErrLoanAmountTooHigh
			}
		}

		id, err := loan.NewUniqueID(idAttempts, func(candidate string) (bool, error) {
			var count int64
			err := tx.Model(&models.LoanApplication{}).Where("id = ?", candidate).Count(&count).Error
			return count > 0, err
		})
		if err != nil {
			return err
		}

		now := time.Now()
		assets := make([]models.LoanApplicationAsset, len(snapshot.SelectedAssets))
		for i, a := range snapshot.SelectedAssets {
			assets[i] = models.LoanApplicationAsset{
				ApplicationID: id,
				Position:      i,
				Name:          a.Name,
				Symbol:        a.Symbol,
				Amount:        a.Amount,
				Value:         a.Value,
			}
		}

		app = &models.LoanApplication{
			ID:              id,
			UserID:          userID,
			Status:          loan.StatusPending,
			TotalCollateral: snapshot.TotalCollateral,
			LoanAmount:      amount,
			MaxLoanAmount:   snapshot.LoanAmount,
			InterestRate:    snapshot.InterestRate,
			LTV:             snapshot.LTV,
			TermMonths:      term,
			SubmittedAt:     now,
			UpdatedAt:       now,
			SelectedAssets:  assets,
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CollateralSelection{}).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return app, nil
}

// GetApplications lists the user's applications, newest first.
func (s *loanService) GetApplications(userID string, status loan.Status, page pagination.PageRequest) (*pagination.PageResponse[models.LoanApplication], error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.ErrInvalidLoanStatus
	}

	query := s.db.Model(&models.LoanApplication{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Order("submitted_at DESC, id ASC")

	result, err := pagination.Find[models.LoanApplication](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.attachAssets(result.Data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// attachAssets loads the snapshot assets of a page of applications in one query.
func (s *loanService) attachAssets(apps []models.LoanApplication) error {
	if len(apps) == 0 {
		return nil
	}
	ids := make([]string, len(apps))
	index := make(map[string]int, len(apps))
	for i := range apps {
		ids[i] = apps[i].ID
		index[apps[i].ID] = i
		apps[i].SelectedAssets = []models.LoanApplicationAsset{}
	}

	var assets []models.LoanApplicationAsset
	if err := s.db.Where("application_id IN ?", ids).Order("application_id ASC, position ASC").Find(&assets).Error; err != nil {
		return err
	}
	for _, a := range assets {
		i := index[a.ApplicationID]
		apps[i].SelectedAssets = append(apps[i].SelectedAssets, a)
	}
	return nil
}

// GetApplicationByID returns one of the user's applications.
func (s *loanService) GetApplicationByID(userID, id string) (*models.LoanApplication, error) {
	return s.findApplication(s.db, userID, id)
}

func (s *loanService) findApplication(db *gorm.DB, userID, id string) (*models.LoanApplication, error) {
	if !loan.IsValidID(id) {
		return nil, apperrors.ErrLoanNotFound
	}

	var app models.LoanApplication
	err := db.Preload("SelectedAssets", func(q *gorm.DB) *gorm.DB {
		return q.Order("position ASC")
	}).Where("id = ? AND user_id = ?", id, userID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &app, nil
}

// UpdateApplicationStatus moves an application to a new status. Only the
// status and updated_at change; the snapshot is immutable.
func (s *loanService) UpdateApplicationStatus(userID, id string, status loan.Status) (*models.LoanApplication, error) {
	var app *models.LoanApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = s.findApplication(tx, userID, id)
		if err != nil {
			return err
		}

		if err := loan.ValidateTransition(app.Status, status, s.strict); err != nil {
			if errors.Is(err, loan.ErrInvalidStatus) {
				return apperrors.ErrInvalidLoanStatus
			}
			return apperrors.WithMessage(apperrors.ErrInvalidStatusTransition,
				"Cannot move application from "+string(app.Status)+" to "+string(status))
		}

		now := time.Now()
		if err := tx.Model(&models.LoanApplication{}).
			Where("id = ?", app.ID).
			Updates(map[string]any{"status": status, "updated_at": now}).Error; err != nil {
			return err
		}
		app.Status = status
		app.UpdatedAt = now
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return app, nil
}

// CancelApplication removes a pending application and its assets.
func (s *loanService) CancelApplication(userID, id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		app, err := s.findApplication(tx, userID, id)
		if err != nil {
			return err
		}
		if app.Status != loan.StatusPending {
			return apperrors.ErrLoanNotCancellable
		}

		if err := tx.Where("application_id = ?", app.ID).Delete(&models.LoanApplicationAsset{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", app.ID).Delete(&models.LoanApplication{}).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSchedule builds the amortization schedule of a stored application.
func (s *loanService) GetSchedule(userID, id string) (*loan.Amortization, error) {
	app, err := s.findApplication(s.db, userID, id)
	if err != nil {
		return nil, err
	}

	schedule, err := loan.Schedule(app.LoanAmount, app.InterestRate, app.TermMonths)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidScheduleInput, err.Error())
	}
	return schedule, nil
}
