package message

import (
	"context"

	"github.com/iyunix/go-chatbot/internal/domain"
)

// MessageRepository handles message data operations.
type MessageRepository interface {
	Append(ctx context.Context, chatID uint, sender domain.Sender, text string) (*domain.Message, error)
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID uint) (int64, error)
}
