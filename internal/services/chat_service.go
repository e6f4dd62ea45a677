// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/domain"
	"github.com/iyunix/go-chatbot/internal/repository/chat"
	"github.com/iyunix/go-chatbot/internal/repository/message"
	"github.com/iyunix/go-chatbot/internal/services/ai"
	chatservice "github.com/iyunix/go-chatbot/internal/services/chat"
)

// MessageView is a stored message plus its rendered HTML.
type MessageView struct {
	domain.Message
	HTML string
}

// ChatView is everything the chat page shows: the sidebar and one thread.
type ChatView struct {
	CurrentChat uint
	Chats       []domain.Chat
	Messages    []MessageView
}

// SendResult is the outcome of one completed user/assistant exchange.
type SendResult struct {
	ChatID      uint
	UserMessage string
	AIMessage   string
}

type ChatService struct {
	config         *chatservice.Config
	chatRepo       chat.ChatRepository
	messageRepo    message.MessageRepository
	contextBuilder *chatservice.ContextBuilder
	provider       ai.Provider
	renderer       *chatservice.MarkdownRenderer
	logger         Logger
	now            func() time.Time
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewChatService(
	chatRepo chat.ChatRepository,
	messageRepo message.MessageRepository,
	provider ai.Provider,
	config *chatservice.Config,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, errors.New("chat repository is required")
	}
	if messageRepo == nil {
		return nil, errors.New("message repository is required")
	}
	if provider == nil {
		return nil, errors.New("AI provider is required")
	}
	if config == nil {
		config = chatservice.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		config:         config,
		chatRepo:       chatRepo,
		messageRepo:    messageRepo,
		contextBuilder: chatservice.NewContextBuilder(config, messageRepo, logger),
		provider:       provider,
		renderer:       chatservice.NewMarkdownRenderer(),
		logger:         logger,
		now:            time.Now,
		sleep:          sleepContext,
	}, nil
}

// HomeRedirect returns the path the client should land on: the newest chat,
// or the new-chat route when there are none.
func (s *ChatService) HomeRedirect(ctx context.Context) (string, error) {
	id, ok, err := s.chatRepo.LatestID(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "/new_chat", nil
	}
	return "/chat/" + strconv.FormatUint(uint64(id), 10), nil
}

// NewChat creates a chat titled after the current local time, seeded with the greeting.
func (s *ChatService) NewChat(ctx context.Context) (uint, error) {
	title := s.config.TitleFor(s.now())

	created, _, err := s.chatRepo.CreateWithGreeting(context.WithoutCancel(ctx), title, s.config.Greeting)
	if err != nil {
		s.logger.Error("failed to create chat", "error", err)
		return 0, err
	}

	s.logger.Info("chat created", "chat_id", created.ID)
	return created.ID, nil
}

// ViewChat lists all chats and the messages of chatID. An unknown chatID
// yields an empty message list.
func (s *ChatService) ViewChat(ctx context.Context, chatID uint) (*ChatView, error) {
	chats, err := s.chatRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		html, renderErr := s.renderer.Render(m.Text)
		if renderErr != nil {
			s.logger.Warn("failed to render message", "message_id", m.ID, "error", renderErr)
		}
		views = append(views, MessageView{Message: m, HTML: html})
	}

	return &ChatView{CurrentChat: chatID, Chats: chats, Messages: views}, nil
}

// SendMessage stores the user's message, asks the assistant for a reply with
// the full history, and stores the reply. The two writes are not one
// transaction: if the assistant fails, the user message stays and no ai
// message is written.
func (s *ChatService) SendMessage(ctx context.Context, chatID uint, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("send_message", "Message cannot be empty")
	}

	// Committed writes must survive a client disconnect.
	storeCtx := context.WithoutCancel(ctx)

	if _, err := s.messageRepo.Append(storeCtx, chatID, domain.SenderUser, text); err != nil {
		s.logger.Warn("failed to store user message", "chat_id", chatID, "error", err)
		return nil, err
	}

	turns, err := s.contextBuilder.BuildContext(storeCtx, chatID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("requesting assistant reply",
		"chat_id", chatID,
		"turns", len(turns),
		"preview", chatservice.TruncateText(text, 40))

	start := s.now()
	reply, err := s.generateWithRetry(ctx, chatID, turns)
	if err != nil {
		s.logger.Error("assistant reply failed",
			"chat_id", chatID,
			"elapsed_ms", s.now().Sub(start).Milliseconds(),
			"error", err)
		return nil, apperr.Upstream("send_message", "The assistant is unavailable, please try again", err)
	}

	if _, err := s.messageRepo.Append(storeCtx, chatID, domain.SenderAI, reply); err != nil {
		s.logger.Error("failed to store assistant reply", "chat_id", chatID, "error", err)
		return nil, err
	}

	s.logger.Info("assistant reply stored",
		"chat_id", chatID,
		"elapsed_ms", s.now().Sub(start).Milliseconds(),
		"reply_length", len(reply))

	return &SendResult{ChatID: chatID, UserMessage: text, AIMessage: reply}, nil
}

func (s *ChatService) generateWithRetry(ctx context.Context, chatID uint, turns []ai.Turn) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.config.ReplyRetries; attempt++ {
		if attempt > 0 {
			if err := s.sleep(ctx, s.config.RetryDelay); err != nil {
				return "", lastErr
			}
			s.logger.Warn("retrying assistant reply", "chat_id", chatID, "attempt", attempt+1)
		}

		reply, err := s.provider.GenerateReply(ctx, turns)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		var aiErr *ai.AIError
		if errors.As(err, &aiErr) && !aiErr.Retryable() {
			break
		}
	}
	return "", lastErr
}

func (s *ChatService) DeleteChat(ctx context.Context, chatID uint) error {
	if err := s.chatRepo.Delete(context.WithoutCancel(ctx), chatID); err != nil {
		return err
	}
	s.logger.Info("chat deleted", "chat_id", chatID)
	return nil
}

// RenameChat stores and returns the trimmed title.
func (s *ChatService) RenameChat(ctx context.Context, chatID uint, title string) (string, error) {
	updated, err := s.chatRepo.Rename(context.WithoutCancel(ctx), chatID, title)
	if err != nil {
		return "", err
	}
	s.logger.Info("chat renamed", "chat_id", chatID)
	return updated.Title, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
