// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	DatabasePath string

	// OpenAI-compatible endpoint used for assistant replies.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration

	SessionTTL       time.Duration
	BcryptCost       int
	ChatReplyRetries int

	LogLevel    string
	LogFile     string
	Environment string
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if !isProduction(env) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8000"),
		DatabasePath:     getEnv("DATABASE_PATH", "chatbot.db"),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		LLMModel:         getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMTimeout:       time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		SessionTTL:       time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 30*24)) * time.Hour,
		BcryptCost:       getEnvAsInt("BCRYPT_COST", 12),
		ChatReplyRetries: getEnvAsInt("CHAT_REPLY_RETRIES", 0),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
		Environment:      env,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and, in production, required secrets.
func (c *Config) Validate() error {
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT_SECONDS must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.ChatReplyRetries < 0 {
		return fmt.Errorf("CHAT_REPLY_RETRIES cannot be negative")
	}

	if c.IsProduction() {
		missing := []string{}
		if c.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
