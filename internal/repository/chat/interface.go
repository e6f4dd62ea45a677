package chat

import (
	"context"

	"github.com/iyunix/go-chatbot/internal/domain"
)

// ChatRepository handles chat data operations.
type ChatRepository interface {
	CreateWithGreeting(ctx context.Context, title, greeting string) (*domain.Chat, *domain.Message, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]domain.Chat, error)
	LatestID(ctx context.Context) (uint, bool, error)
	Rename(ctx context.Context, id uint, title string) (*domain.Chat, error)
	Delete(ctx context.Context, id uint) error
}
