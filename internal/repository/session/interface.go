package session

import (
	"context"
	"time"

	"github.com/iyunix/go-chatbot/internal/domain"
)

// SessionRepository handles session data operations.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
