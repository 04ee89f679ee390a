package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 10*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramBaseURL)
	assert.Empty(t, cfg.TelegramBotToken)
	assert.Empty(t, cfg.CRMWebhookURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("CRM_WEBHOOK_URL", "https://crm.example.com/hooks/leads")
	t.Setenv("CRM_WEBHOOK_TOKEN", "secret")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DELIVERY_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com, https://www.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "123:abc", cfg.TelegramBotToken)
	assert.Equal(t, "-100200300", cfg.TelegramChatID)
	assert.Equal(t, "https://crm.example.com/hooks/leads", cfg.CRMWebhookURL)
	assert.Equal(t, "secret", cfg.CRMWebhookToken)
	assert.Equal(t, 3, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 5*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, []string{"https://example.com", "https://www.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "many")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := Load()

	assert.Equal(t, 8, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}
