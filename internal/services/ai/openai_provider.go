// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config == nil {
		return nil, NewConfigError("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// GenerateReply sends the full conversation and returns the trimmed reply text.
func (p *OpenAIProvider) GenerateReply(ctx context.Context, turns []Turn) (string, error) {
	if len(turns) == 0 {
		return "", &AIError{Type: ErrTypeConfig, Operation: "completion", Message: "conversation is empty"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Messages:    toOpenAIMessages(turns),
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	})
	if err != nil {
		return "", classifyError("completion", p.config.Model, err)
	}

	if len(resp.Choices) == 0 {
		return "", &AIError{Type: ErrTypeEmpty, Operation: "completion", Model: p.config.Model, Message: "no choices in completion response"}
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", &AIError{Type: ErrTypeEmpty, Operation: "completion", Model: p.config.Model, Message: "empty completion response"}
	}
	return reply, nil
}

func (p *OpenAIProvider) Model() string {
	return p.config.Model
}

func toOpenAIMessages(turns []Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		switch t.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return messages
}
