// File: internal/dtos/chat.go
package dtos

import (
	"time"

	"github.com/iyunix/go-chatbot/internal/domain"
)

// TimestampLayout is how chat and message times appear on the wire.
const TimestampLayout = "2006-01-02 15:04:05"

// SendMessageRequestDTO is the payload of POST /send/{id}. Blank text is
// rejected by the chat service so the error detail stays consistent.
type SendMessageRequestDTO struct {
	Message string `json:"message"`
}

type UpdateChatTitleRequestDTO struct {
	Title string `json:"title"`
}

type RedirectResponseDTO struct {
	RedirectTo string `json:"redirect_to"`
}

type NewChatResponseDTO struct {
	ChatID uint `json:"chat_id"`
}

type ChatSummaryDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type MessageDTO struct {
	ID        uint   `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	HTML      string `json:"html"`
	CreatedAt string `json:"created_at"`
}

type ChatViewResponseDTO struct {
	CurrentChat uint             `json:"current_chat"`
	Chats       []ChatSummaryDTO `json:"chats"`
	Messages    []MessageDTO     `json:"messages"`
}

type SendMessageResponseDTO struct {
	ChatID      uint   `json:"chat_id"`
	UserMessage string `json:"user_message"`
	AIMessage   string `json:"ai_message"`
}

type SuccessResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UpdateChatTitleResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Title   string `json:"title"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ToChatSummaries(chats []domain.Chat) []ChatSummaryDTO {
	out := make([]ChatSummaryDTO, 0, len(chats))
	for _, c := range chats {
		out = append(out, ChatSummaryDTO{ID: c.ID, Title: c.Title, CreatedAt: FormatTimestamp(c.CreatedAt)})
	}
	return out
}

func ToMessageDTO(m domain.Message, html string) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Sender:    m.Sender.String(),
		Text:      m.Text,
		HTML:      html,
		CreatedAt: FormatTimestamp(m.CreatedAt),
	}
}
