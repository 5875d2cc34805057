package services

import (
	"encoding/json"

	"altrion/internal/logger"
	"altrion/internal/models"

	"gorm.io/gorm"
)

// Audited actions.
const (
	ActionSignup           = "SIGNUP"
	ActionSignin           = "SIGNIN"
	ActionOAuthSignin      = "OAUTH_SIGNIN"
	ActionLogout           = "LOGOUT"
	ActionSyncHoldings     = "SYNC_HOLDINGS"
	ActionSubmitLoan       = "SUBMIT_LOAN"
	ActionUpdateLoanStatus = "UPDATE_LOAN_STATUS"
	ActionCancelLoan       = "CANCEL_LOAN"
	ActionPlatformConnect  = "PLATFORM_CONNECT"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends an audit row. A failed write is logged and dropped: the
// audited operation has already happened and must not be reported as failed.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("audit write failed",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
	}
}

func encodeChanges(action string, changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("audit changes not serializable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
