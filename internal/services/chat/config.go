// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultSystemPrompt = "You are a friendly, polite, helpful conversational chatbot. " +
		"Answer every question in clear sentences. If unclear, ask for clarification."
	DefaultGreeting    = "Hello! How can I help you today?"
	DefaultTitleLayout = "2006-01-02 15:04:05"
)

type Config struct {
	SystemPrompt string
	Greeting     string

	// New chats are titled "Chat " + creation time in this layout.
	TitleLayout string

	// Extra attempts after a failed reply. Zero disables retrying.
	ReplyRetries int
	RetryDelay   time.Duration
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.SystemPrompt) == "" {
		return fmt.Errorf("system_prompt is required")
	}
	if strings.TrimSpace(c.Greeting) == "" {
		return fmt.Errorf("greeting is required")
	}
	if c.TitleLayout == "" {
		return fmt.Errorf("title_layout is required")
	}
	if c.ReplyRetries < 0 {
		return fmt.Errorf("reply_retries cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		SystemPrompt: DefaultSystemPrompt,
		Greeting:     DefaultGreeting,
		TitleLayout:  DefaultTitleLayout,
		ReplyRetries: 0,
		RetryDelay:   time.Second,
	}
}

// TitleFor returns the generated title of a chat created at t.
func (c *Config) TitleFor(t time.Time) string {
	return "Chat " + t.Format(c.TitleLayout)
}
