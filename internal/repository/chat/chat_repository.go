package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/domain"
)

const maxTitleLength = 200

type gormChatRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// CreateWithGreeting inserts the chat and its ai greeting atomically; neither
// row exists without the other.
func (r *gormChatRepository) CreateWithGreeting(ctx context.Context, title, greeting string) (*domain.Chat, *domain.Message, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title, "create_chat"); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(greeting) == "" {
		return nil, nil, apperr.Validation("create_chat", "Greeting cannot be empty")
	}

	now := r.now()
	chat := &domain.Chat{Title: title, CreatedAt: now}
	var message *domain.Message

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		message = &domain.Message{ChatID: chat.ID, Sender: domain.SenderAI, Text: greeting, CreatedAt: now}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, nil, apperr.Internal("create_chat", "database error creating chat", err)
	}
	return chat, message, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	if id == 0 {
		return nil, chatNotFound("find_chat")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chatNotFound("find_chat")
		}
		return nil, apperr.Internal("find_chat", "database query failed", err)
	}
	return &chat, nil
}

func (r *gormChatRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperr.Internal("chat_exists", "database error checking chat existence", err)
	}
	return count > 0, nil
}

// List returns every chat, newest first.
func (r *gormChatRepository) List(ctx context.Context) ([]domain.Chat, error) {
	chats := []domain.Chat{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, apperr.Internal("list_chats", "database error fetching chats", err)
	}
	return chats, nil
}

// LatestID returns the id of the newest chat; ok is false when there are none.
func (r *gormChatRepository) LatestID(ctx context.Context) (uint, bool, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Select("id").
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&chats).Error
	if err != nil {
		return 0, false, apperr.Internal("latest_chat", "database error fetching latest chat", err)
	}
	if len(chats) == 0 {
		return 0, false, nil
	}
	return chats[0].ID, true, nil
}

// Rename validates before touching storage so a rejected title leaves the row unchanged.
func (r *gormChatRepository) Rename(ctx context.Context, id uint, title string) (*domain.Chat, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title, "rename_chat"); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", id).
		Update("title", title)
	if result.Error != nil {
		return nil, apperr.Internal("rename_chat", "database error updating chat title", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, chatNotFound("rename_chat")
	}
	return r.FindByID(ctx, id)
}

// Delete removes the chat's messages and then the chat in one transaction.
func (r *gormChatRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Chat{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return chatNotFound("delete_chat")
		}
		if err := tx.Where("chat_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Chat{}).Error
	})
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		return apperr.Internal("delete_chat", "database error deleting chat", err)
	}
	return nil
}

func validateTitle(title, operation string) error {
	if title == "" {
		return apperr.Validation(operation, "Title cannot be empty")
	}
	if len([]rune(title)) > maxTitleLength {
		return apperr.Validation(operation, "Title must be 200 characters or less")
	}
	return nil
}

func chatNotFound(operation string) error {
	return apperr.NotFound(operation, "Chat not found")
}
