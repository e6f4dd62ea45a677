// File: internal/services/ai/interface.go
package ai

import "context"

// Role identifies the author of a conversation turn as seen by the model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation sent to the model.
type Turn struct {
	Role    Role
	Content string
}

// Provider produces the next assistant reply for a conversation.
type Provider interface {
	GenerateReply(ctx context.Context, turns []Turn) (string, error)
}
