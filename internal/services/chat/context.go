// File: internal/services/chat/context.go
package chat

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/iyunix/go-chatbot/internal/domain"
	"github.com/iyunix/go-chatbot/internal/services/ai"
)

// MessageLister is the slice of the message store the builder reads from.
type MessageLister interface {
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
}

// ContextBuilder assembles the conversation sent to the model.
type ContextBuilder struct {
	config   *Config
	messages MessageLister
	logger   Logger
}

func NewContextBuilder(config *Config, messages MessageLister, logger Logger) *ContextBuilder {
	return &ContextBuilder{
		config:   config,
		messages: messages,
		logger:   logger,
	}
}

// BuildContext returns the system turn followed by every stored message of
// the chat, oldest first.
func (b *ContextBuilder) BuildContext(ctx context.Context, chatID uint) ([]ai.Turn, error) {
	history, err := b.messages.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	turns := TurnsFromMessages(b.config.SystemPrompt, history)
	b.logger.Debug("built chat context", "chat_id", chatID, "turns", len(turns))
	return turns, nil
}

// TurnsFromMessages maps stored messages onto model turns.
func TurnsFromMessages(systemPrompt string, history []domain.Message) []ai.Turn {
	turns := make([]ai.Turn, 0, len(history)+1)
	turns = append(turns, ai.Turn{Role: ai.RoleSystem, Content: systemPrompt})

	for _, m := range history {
		role := ai.RoleUser
		if m.Sender == domain.SenderAI {
			role = ai.RoleAssistant
		}
		turns = append(turns, ai.Turn{Role: role, Content: m.Text})
	}
	return turns
}

// TruncateText safely truncates a UTF-8 string to maxLen runes, preserving character integrity
func TruncateText(input string, maxLen int) string {
	if input == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}

	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String() + "…"
}
