package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"altrion/internal/connect"
	apperrors "altrion/internal/errors"
	"altrion/internal/logger"
	"altrion/internal/models"
)

var errSessionReplaced = apperrors.WithMessage(apperrors.ErrConnectionSessionAbsent, "Connection session was replaced")

// connectionService hosts one connection session per user. Attempts run on
// the service context so they outlive the request that started them.
type connectionService struct {
	ctx       context.Context
	db        *gorm.DB
	connector connect.Connector
	timeout   time.Duration
	audit     AuditServicer

	mu       sync.Mutex
	sessions map[string]*connect.Session
}

// NewConnectionService creates a new ConnectionServicer. Cancelling ctx
// aborts every running attempt.
func NewConnectionService(ctx context.Context, db *gorm.DB, connector connect.Connector, timeout time.Duration, audit AuditServicer) ConnectionServicer {
	return &connectionService{
		ctx:       ctx,
		db:        db,
		connector: connector,
		timeout:   timeout,
		audit:     audit,
		sessions:  make(map[string]*connect.Session),
	}
}

// StartSession replaces the user's session with a new one for platformIDs.
// Duplicate ids are collapsed; a session with attempts still connecting
// cannot be replaced.
func (s *connectionService) StartSession(userID string, platformIDs []string, autoStart bool) (*connect.State, error) {
	ids := make([]string, 0, len(platformIDs))
	seen := make(map[string]bool, len(platformIDs))
	for _, id := range platformIDs {
		if _, ok := connect.LookupPlatform(id); !ok {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownPlatform, "Unknown platform: "+id)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "platform_ids must not be empty")
	}

	s.mu.Lock()
	prev := s.sessions[userID]
	if prev != nil && !prev.Close() {
		s.mu.Unlock()
		return nil, apperrors.ErrConnectionInProgress
	}
	s.mu.Unlock()

	// A closed session launches nothing new, but its last resolve hook may
	// still be persisting. Drain it without holding s.mu.
	if prev != nil {
		prev.Wait()
	}

	session := connect.NewSession(ids, s.connector,
		connect.WithTimeout(s.timeout),
		connect.WithResolveHook(func(a connect.Attempt) { s.recordAttempt(userID, a) }),
	)
	s.mu.Lock()
	if s.sessions[userID] != prev {
		// Another StartSession for this user won the swap.
		s.mu.Unlock()
		return nil, apperrors.ErrConnectionInProgress
	}
	s.sessions[userID] = session
	s.mu.Unlock()

	if autoStart {
		session.Start(s.ctx)
	}

	state := session.State()
	return &state, nil
}

// GetSession returns the state of the user's session.
func (s *connectionService) GetSession(userID string) (*connect.State, error) {
	session, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	state := session.State()
	return &state, nil
}

// Initiate starts the pending attempt at index.
func (s *connectionService) Initiate(userID string, index int) (*connect.State, error) {
	session, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	if err := session.Initiate(s.ctx, index); err != nil {
		return nil, translateConnectError(err)
	}
	state := session.State()
	return &state, nil
}

// Retry re-runs the failed attempt at index.
func (s *connectionService) Retry(userID string, index int) (*connect.State, error) {
	session, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	if err := session.Retry(s.ctx, index); err != nil {
		return nil, translateConnectError(err)
	}
	state := session.State()
	return &state, nil
}

func (s *connectionService) session(userID string) (*connect.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, apperrors.ErrConnectionSessionAbsent
	}
	return session, nil
}

func translateConnectError(err error) error {
	switch {
	case errors.Is(err, connect.ErrIndexOutOfRange):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "connection index out of range")
	case errors.Is(err, connect.ErrNotPending):
		return apperrors.ErrConnectionNotPending
	case errors.Is(err, connect.ErrNotRetryable):
		return apperrors.ErrConnectionNotRetryable
	case errors.Is(err, connect.ErrSessionClosed):
		return errSessionReplaced
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// GetLinkedPlatforms lists the user's persisted connection outcomes.
func (s *connectionService) GetLinkedPlatforms(userID string) ([]models.PlatformConnection, error) {
	var rows []models.PlatformConnection
	if err := s.db.Where("user_id = ?", userID).Order("platform_id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// Wait blocks until every running attempt of every session has resolved.
func (s *connectionService) Wait() {
	s.mu.Lock()
	sessions := make([]*connect.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Wait()
	}
}

// recordAttempt upserts the resolved attempt into platform_connections.
func (s *connectionService) recordAttempt(userID string, a connect.Attempt) {
	log := logger.Get()
	if a.Status == connect.StatusSuccess {
		log.Infow("platform connected", "user_id", userID, "platform_id", a.PlatformID, "tries", a.Tries)
	} else {
		log.Warnw("platform connection failed", "user_id", userID, "platform_id", a.PlatformID, "tries", a.Tries, "error", a.Error)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var conn models.PlatformConnection
		err := tx.Where("user_id = ? AND platform_id = ?", userID, a.PlatformID).First(&conn).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			conn = models.PlatformConnection{UserID: userID, PlatformID: a.PlatformID}
		}

		conn.Status = a.Status
		conn.LastError = a.Error
		conn.Attempts++
		if a.Status == connect.StatusSuccess {
			connectedAt := a.UpdatedAt
			conn.ConnectedAt = &connectedAt
		}
		return tx.Save(&conn).Error
	})
	if err != nil {
		log.Errorw("failed to persist platform connection", "error", err, "user_id", userID, "platform_id", a.PlatformID)
		return
	}

	if s.audit != nil {
		s.audit.Log(userID, ActionPlatformConnect, "platform_connection", a.PlatformID, "", map[string]any{
			"status": a.Status,
			"tries":  a.Tries,
			"error":  a.Error,
		})
	}
}
