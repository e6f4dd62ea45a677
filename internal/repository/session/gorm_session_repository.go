package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/database"
	"github.com/iyunix/go-chatbot/internal/domain"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrTokenCollision means the token is already held by another session.
	ErrTokenCollision = errors.New("session token already exists")
)

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.UserID == 0 || session.Token == "" {
		return apperr.Validation("create_session", "session requires a user and a token")
	}

	err := r.db.WithContext(ctx).Omit("User").Create(session).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrTokenCollision
		}
		return apperr.Internal("create_session", "database error creating session", err)
	}
	return nil
}

// FindByToken loads the session joined to its user. Expiry is not checked here.
func (r *gormSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session domain.Session
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("sessions.token = ?", token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, apperr.Internal("find_session", "database error fetching session", err)
	}
	return &session, nil
}

// DeleteByToken is idempotent: deleting an unknown token is not an error.
func (r *gormSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.Session{}).Error
	if err != nil {
		return apperr.Internal("delete_session", "database error deleting session", err)
	}
	return nil
}

func (r *gormSessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.Session{})
	if result.Error != nil {
		return 0, apperr.Internal("purge_sessions", "database error purging sessions", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Session{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("count_sessions", "database error counting sessions", err)
	}
	return count, nil
}
