package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("WEBHOOK_SECRET", "hook")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "pass")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultGroqEndpoint, cfg.GroqAPIEndpoint)
	assert.Equal(t, DefaultLLMMaxTokens, cfg.LLMMaxTokens)
	assert.Equal(t, DefaultHighRiskThreshold, cfg.HighRiskThreshold)
	assert.Equal(t, DefaultReviewThreshold, cfg.ReviewThreshold)
	assert.Equal(t, DefaultHighRiskCountries, cfg.HighRiskCountries)
	assert.Equal(t, DefaultNotificationsFile, cfg.NotificationsFile)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HIGH_RISK_COUNTRIES", "RU, KP ,SY")
	t.Setenv("HIGH_RISK_THRESHOLD", "0.9")
	t.Setenv("REVIEW_THRESHOLD", "0.5")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"RU", "KP", "SY"}, cfg.HighRiskCountries)
	assert.Equal(t, 0.9, cfg.HighRiskThreshold)
	assert.Equal(t, 0.5, cfg.ReviewThreshold)
	assert.Equal(t, 0.2, cfg.LLMTemperature)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("WEBHOOK_SECRET", "")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "pass")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBHOOK_SECRET")
}

func TestValidateThresholdBounds(t *testing.T) {
	cfg := &Config{
		WebhookSecret:     "hook",
		AdminUsername:     "admin",
		AdminPassword:     "pass",
		HighRiskThreshold: 1.5,
		ReviewThreshold:   0.3,
	}
	require.Error(t, cfg.Validate())

	cfg.HighRiskThreshold = 0.7
	cfg.ReviewThreshold = 0.8 // above the high-risk gate
	require.Error(t, cfg.Validate())

	cfg.ReviewThreshold = 0.3
	assert.NoError(t, cfg.Validate())
}
