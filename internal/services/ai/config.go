// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// Upper bound for one completion call, including connection setup.
	Timeout time.Duration

	Temperature float32
	MaxTokens   int
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta/openai/",
		Model:       "gemini-2.5-flash",
		Timeout:     60 * time.Second,
		Temperature: 0.7,
	}
}
