package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "")
	os.Unsetenv("SERVER_PORT")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")
	t.Setenv("CHAT_REPLY_RETRIES", "2")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2, cfg.ChatReplyRetries)
	assert.Equal(t, 12, cfg.BcryptCost, "unparsable values fall back to the default")
}

func TestLoadProductionRequiresAPIKey(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LLM_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")

	t.Setenv("LLM_API_KEY", "sk-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidateRanges(t *testing.T) {
	base := Config{LLMTimeout: time.Second, SessionTTL: time.Hour, BcryptCost: 10}
	require.NoError(t, base.Validate())

	bad := base
	bad.BcryptCost = 3
	assert.Error(t, bad.Validate())

	bad = base
	bad.SessionTTL = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.ChatReplyRetries = -1
	assert.Error(t, bad.Validate())
}
