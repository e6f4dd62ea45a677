package message

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/domain"
)

type gormMessageRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Append stores a message at the end of a chat. The chat's existence is
// checked inside the insert transaction so a concurrent delete cannot leave
// an orphaned row.
func (r *gormMessageRepository) Append(ctx context.Context, chatID uint, sender domain.Sender, text string) (*domain.Message, error) {
	if !sender.Valid() {
		return nil, apperr.Validation("append_message", "Invalid message sender")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("append_message", "Message cannot be empty")
	}

	msg := &domain.Message{ChatID: chatID, Sender: sender, Text: text}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Chat{}).Where("id = ?", chatID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("append_message", "Chat not found")
		}
		msg.CreatedAt = r.now()
		return tx.Create(msg).Error
	})
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
		return nil, apperr.Internal("append_message", "database error saving message", err)
	}
	return msg, nil
}

// FindByChatID returns a chat's messages oldest first. Unknown chats yield an
// empty slice.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	messages := []domain.Message{}
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Internal("find_messages", "database error fetching messages", err)
	}
	return messages, nil
}

func (r *gormMessageRepository) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_id = ?", chatID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("count_messages", "database error counting messages", err)
	}
	return count, nil
}
