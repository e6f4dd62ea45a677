// File: cmd/server/app.go
package main

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/go-chatbot/internal/auth"
	"github.com/iyunix/go-chatbot/internal/config"
	"github.com/iyunix/go-chatbot/internal/database"
	"github.com/iyunix/go-chatbot/internal/handlers"
	"github.com/iyunix/go-chatbot/internal/repository/chat"
	"github.com/iyunix/go-chatbot/internal/repository/message"
	"github.com/iyunix/go-chatbot/internal/repository/session"
	"github.com/iyunix/go-chatbot/internal/repository/user"
	"github.com/iyunix/go-chatbot/internal/services"
	"github.com/iyunix/go-chatbot/internal/services/ai"
	chatservice "github.com/iyunix/go-chatbot/internal/services/chat"
	"github.com/iyunix/go-chatbot/internal/services/user_services"
)

// Application aggregates all services and handlers
type Application struct {
	Config         *config.Config
	Logger         *services.ZapLogger
	DB             *gorm.DB
	SessionService *user_services.SessionService
	AuthService    *user_services.AuthService
	ChatService    *services.ChatService
	AuthHandler    *handlers.AuthHandler
	ChatHandler    *handlers.ChatHandler
}

func ProvideLogger(cfg *config.Config) *services.ZapLogger {
	return services.NewLogger("go_chatbot", services.LoggerOptions{
		Level:      cfg.LogLevel,
		Structured: cfg.IsProduction(),
		FilePath:   cfg.LogFile,
	})
}

func ProvideDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if strings.EqualFold(cfg.LogLevel, "debug") {
		level = gormlogger.Info
	}

	db, err := database.Open(cfg.DatabasePath, level)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

func ProvideAIProvider(cfg *config.Config) (*ai.OpenAIProvider, error) {
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.Model = cfg.LLMModel
	aiConfig.Timeout = cfg.LLMTimeout
	return ai.NewOpenAIProvider(aiConfig)
}

// buildApplication wires repositories, services and handlers in dependency order.
func buildApplication(cfg *config.Config) (*Application, error) {
	logger := ProvideLogger(cfg)

	db, err := ProvideDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	provider, err := ProvideAIProvider(cfg)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("ai provider: %w", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	sessionRepo := session.NewSessionRepository(db)
	chatRepo := chat.NewChatRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	sessionService := user_services.NewSessionService(sessionRepo, cfg.SessionTTL, logger.Named("sessions"))
	authService, err := user_services.NewAuthService(userRepo, sessionService, auth.NewPasswordHasher(cfg.BcryptCost), logger.Named("auth"))
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auth service: %w", err)
	}

	chatConfig := chatservice.DefaultConfig()
	chatConfig.ReplyRetries = cfg.ChatReplyRetries
	chatService, err := services.NewChatService(chatRepo, messageRepo, provider, chatConfig, logger.Named("chat"))
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("chat service: %w", err)
	}

	return &Application{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		SessionService: sessionService,
		AuthService:    authService,
		ChatService:    chatService,
		AuthHandler:    handlers.NewAuthHandler(authService, logger.Named("http")),
		ChatHandler:    handlers.NewChatHandler(chatService, logger.Named("http")),
	}, nil
}

// PurgeExpiredSessions drops sessions that expired while the server was down.
func (a *Application) PurgeExpiredSessions(ctx context.Context) {
	if _, err := a.SessionService.PurgeExpired(ctx); err != nil {
		a.Logger.Warn("failed to purge expired sessions", "error", err)
	}
}

func (a *Application) Close() error {
	_ = a.Logger.Sync()
	return database.Close(a.DB)
}
