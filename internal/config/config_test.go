package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_ENV":                "test",
		"APP_PORT":               "8080",
		"DB_USER":                "app",
		"DB_HOST":                "localhost",
		"DB_PORT":                "3306",
		"DB_NAME":                "tickets",
		"JWT_SECRET":             "s3cret",
		"ACCESS_TOKEN_TTL_MIN":   "15",
		"REFRESH_TOKEN_TTL_DAYS": "7",
	} {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Equal(t, 10*time.Minute, cfg.Engine.ReservationTTL)
	assert.Equal(t, time.Minute, cfg.Engine.ReaperInterval)
	assert.Equal(t, 500, cfg.Engine.MaxTicketsPerOrganizer)
	assert.Equal(t, "ticket.notifications", cfg.Broker.Queue)
	assert.Equal(t, 5, cfg.Broker.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Broker.RetryDelay)
	assert.Equal(t, "", cfg.SMTP.Host)
	assert.False(t, cfg.IsProd())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RESERVATION_TTL", "90s")
	t.Setenv("MAX_TICKETS_PER_ORGANIZER", "20")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://mq:5672/")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1m")
	t.Setenv("CACHE_ENABLED", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Engine.ReservationTTL)
	assert.Equal(t, 20, cfg.Engine.MaxTicketsPerOrganizer)
	assert.Equal(t, "amqp://mq:5672/", cfg.Broker.URL)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.TTL)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_ReportsEveryMissingVar(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DB_HOST")
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, `invalid int for ACCESS_TOKEN_TTL_MIN: "soon"`)
}
