// File: internal/services/user_services/session_service.go
package user_services

import (
	"context"
	"errors"
	"time"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/auth"
	"github.com/iyunix/go-chatbot/internal/domain"
	"github.com/iyunix/go-chatbot/internal/repository/session"
)

// DefaultSessionTTL is the fixed lifetime of a session. It is never extended.
const DefaultSessionTTL = 30 * 24 * time.Hour

const maxTokenAttempts = 3

type SessionService struct {
	sessions session.SessionRepository
	ttl      time.Duration
	logger   Logger
	now      func() time.Time
	newToken func() (string, error)
}

func NewSessionService(sessions session.SessionRepository, ttl time.Duration, logger Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: auth.NewSessionToken,
	}
}

// CreateSession issues a new token for userID, regenerating on the
// astronomically rare unique-index collision.
func (s *SessionService) CreateSession(ctx context.Context, userID uint) (*domain.Session, error) {
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := s.newToken()
		if err != nil {
			return nil, apperr.Internal("create_session", "failed to generate session token", err)
		}

		now := s.now()
		sess := &domain.Session{
			UserID:    userID,
			Token:     token,
			CreatedAt: now,
			ExpiresAt: now.Add(s.ttl),
		}

		err = s.sessions.Create(ctx, sess)
		if err == nil {
			s.logger.Debug("session created", "user_id", userID, "expires_at", sess.ExpiresAt)
			return sess, nil
		}
		if !errors.Is(err, session.ErrTokenCollision) {
			return nil, err
		}
		s.logger.Warn("session token collision, regenerating", "attempt", attempt)
	}
	return nil, apperr.Internal("create_session", "could not allocate a unique session token", session.ErrTokenCollision)
}

// ResolveSession returns the user owning token, or nil when the token is
// malformed, unknown or expired. Errors are reserved for storage faults.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if !auth.IsWellFormedToken(token) {
		return nil, nil
	}

	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !sess.IsActive(s.now()) {
		return nil, nil
	}

	user := sess.User
	return &user, nil
}

// RevokeSession deletes the session for token. Unknown tokens are not an error.
func (s *SessionService) RevokeSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// PurgeExpired removes sessions that can no longer authenticate.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessions.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("purged expired sessions", "count", removed)
	}
	return removed, nil
}
