package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/domain"
	"github.com/iyunix/go-chatbot/internal/testutil"
)

func setup(t *testing.T, now func() time.Time) (*gormMessageRepository, uint) {
	db := testutil.NewTestDB(t)
	chat := &domain.Chat{Title: "test", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(chat).Error)
	return &gormMessageRepository{db: db, now: now}, chat.ID
}

func TestAppendAndOrder(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo, chatID := setup(t, func() time.Time { return fixed })
	ctx := context.Background()

	// Identical timestamps fall back to insertion order.
	_, err := repo.Append(ctx, chatID, domain.SenderAI, "Hello! How can I help you today?")
	require.NoError(t, err)
	_, err = repo.Append(ctx, chatID, domain.SenderUser, "What is 2+2?")
	require.NoError(t, err)
	_, err = repo.Append(ctx, chatID, domain.SenderAI, "4")
	require.NoError(t, err)

	messages, err := repo.FindByChatID(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []domain.Sender{domain.SenderAI, domain.SenderUser, domain.SenderAI},
		[]domain.Sender{messages[0].Sender, messages[1].Sender, messages[2].Sender})
	assert.Equal(t, "What is 2+2?", messages[1].Text)

	count, err := repo.CountByChatID(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAppendValidation(t *testing.T) {
	repo, chatID := setup(t, func() time.Time { return time.Now().UTC() })
	ctx := context.Background()

	_, err := repo.Append(ctx, chatID, domain.SenderUser, "   \n\t")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = repo.Append(ctx, chatID, domain.Sender("system"), "hi")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	count, err := repo.CountByChatID(ctx, chatID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAppendToMissingChat(t *testing.T) {
	repo, _ := setup(t, func() time.Time { return time.Now().UTC() })

	_, err := repo.Append(context.Background(), 999, domain.SenderUser, "hi")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestFindByChatIDUnknownChatIsEmpty(t *testing.T) {
	repo, _ := setup(t, func() time.Time { return time.Now().UTC() })

	messages, err := repo.FindByChatID(context.Background(), 12345)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}
