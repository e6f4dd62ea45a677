package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]interface{}{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(body)
}

func newTestProvider(t *testing.T, url string, timeout time.Duration) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(&Config{APIKey: "test-key", BaseURL: url, Model: "test-model", Timeout: timeout})
	require.NoError(t, err)
	return p
}

func TestGenerateReplySendsConversation(t *testing.T) {
	var got capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("  4 \n")))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL+"/", time.Second)
	reply, err := p.GenerateReply(context.Background(), []Turn{
		{Role: RoleSystem, Content: "be nice"},
		{Role: RoleAssistant, Content: "Hello!"},
		{Role: RoleUser, Content: "What is 2+2?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "4", reply)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "user", got.Messages[2].Role)
	assert.Equal(t, "What is 2+2?", got.Messages[2].Content)
}

func TestGenerateReplyEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("   ")))
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, time.Second).GenerateReply(context.Background(), []Turn{{Role: RoleUser, Content: "hi"}})

	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeEmpty, aiErr.Type)
}

func TestGenerateReplyProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, time.Second).GenerateReply(context.Background(), []Turn{{Role: RoleUser, Content: "hi"}})

	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeRateLimit, aiErr.Type)
	assert.Equal(t, http.StatusTooManyRequests, aiErr.Code)
	assert.True(t, aiErr.Retryable())
}

func TestGenerateReplyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, 50*time.Millisecond).GenerateReply(context.Background(), []Turn{{Role: RoleUser, Content: "hi"}})

	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeTimeout, aiErr.Type)
}

func TestNewOpenAIProviderValidatesConfig(t *testing.T) {
	_, err := NewOpenAIProvider(&Config{BaseURL: "http://localhost", Timeout: time.Second})
	require.Error(t, err)

	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeConfig, aiErr.Type)
}
