package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "foodshare123", cfg.DemoPassword)
	assert.True(t, cfg.SeedDemoData)
	assert.False(t, cfg.AllowExpiredClaims)
	assert.Equal(t, int64(50), cfg.NotificationLimit)
	assert.Equal(t, "@every 5m", cfg.ExpiryReminderSchedule)
	assert.Equal(t, 30*time.Minute, cfg.ExpiryReminderWindow)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOW_EXPIRED_CLAIMS", "true")
	t.Setenv("NOTIFICATION_HISTORY", "-4")
	t.Setenv("EXPIRY_REMINDER_WINDOW", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.AllowExpiredClaims)
	assert.Equal(t, int64(50), cfg.NotificationLimit)
	assert.Equal(t, time.Hour, cfg.ExpiryReminderWindow)
}
