// File: internal/services/ai/errors.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeNetwork   ErrorType = "NETWORK"
	ErrTypeTimeout   ErrorType = "TIMEOUT"
	ErrTypeProvider  ErrorType = "PROVIDER"
	ErrTypeRateLimit ErrorType = "RATE_LIMIT"
	ErrTypeEmpty     ErrorType = "EMPTY_REPLY"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Model     string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether another attempt could plausibly succeed.
func (e *AIError) Retryable() bool {
	switch e.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeRateLimit, ErrTypeEmpty:
		return true
	case ErrTypeProvider:
		return e.Code >= http.StatusInternalServerError
	default:
		return false
	}
}

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

// classifyError maps a go-openai client error onto an AIError.
func classifyError(operation, model string, err error) *AIError {
	aiErr := &AIError{Operation: operation, Model: model, Cause: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		aiErr.Type = ErrTypeTimeout
		aiErr.Message = "completion timed out"
	case errors.Is(err, context.Canceled):
		aiErr.Type = ErrTypeNetwork
		aiErr.Message = "completion canceled"
	case errors.As(err, &apiErr):
		aiErr.Code = apiErr.HTTPStatusCode
		aiErr.Type = typeForStatus(apiErr.HTTPStatusCode)
		aiErr.Message = "provider rejected completion request"
	case errors.As(err, &reqErr):
		aiErr.Code = reqErr.HTTPStatusCode
		aiErr.Type = typeForStatus(reqErr.HTTPStatusCode)
		aiErr.Message = "provider request failed"
	default:
		aiErr.Type = ErrTypeNetwork
		aiErr.Message = "failed to reach provider"
	}
	return aiErr
}

func typeForStatus(status int) ErrorType {
	if status == http.StatusTooManyRequests {
		return ErrTypeRateLimit
	}
	return ErrTypeProvider
}
