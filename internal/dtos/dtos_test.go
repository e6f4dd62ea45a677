package dtos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iyunix/go-chatbot/internal/domain"
)

func TestToChatSummariesFormatsTimestamps(t *testing.T) {
	created := time.Date(2026, 2, 3, 4, 5, 6, 789, time.UTC)

	out := ToChatSummaries([]domain.Chat{{ID: 3, Title: "t", CreatedAt: created}})
	assert.Equal(t, []ChatSummaryDTO{{ID: 3, Title: "t", CreatedAt: "2026-02-03 04:05:06"}}, out)

	assert.NotNil(t, ToChatSummaries(nil))
}

func TestToMessageDTO(t *testing.T) {
	m := domain.Message{ID: 1, ChatID: 2, Sender: domain.SenderAI, Text: "**hi**", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	dto := ToMessageDTO(m, "<p><strong>hi</strong></p>")
	assert.Equal(t, "ai", dto.Sender)
	assert.Equal(t, "**hi**", dto.Text)
	assert.Equal(t, "2026-01-01 00:00:00", dto.CreatedAt)
}

func TestToUserResponseOmitsHash(t *testing.T) {
	u := &domain.User{ID: 1, Email: "a@x.com", Name: "A", PasswordHash: "secret"}
	assert.Equal(t, UserResponseDTO{ID: 1, Email: "a@x.com", Name: "A"}, ToUserResponse(u))
}
