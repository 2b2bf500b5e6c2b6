package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ReviewTTL)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("THROTTLE_RPS", "2.5")
	t.Setenv("REVIEW_CACHE_TTL", "30s")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 2.5, cfg.HTTP.ThrottleRPS)
	assert.Equal(t, 30*time.Second, cfg.Cache.ReviewTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-jwt")

	_, err := Load()
	assert.ErrorContains(t, err, "FINGERPRINT_SECRET")

	t.Setenv("FINGERPRINT_SECRET", "prod-fp")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_CONN_LIFETIME", "90s")
	t.Setenv("DB_RETRY_DELAY", "not-a-duration")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.MaxConnLifetime)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Contains(t, cfg.DSN(), "localhost:6543")
}

func TestLoadDatabaseConfig_RejectsBadPool(t *testing.T) {
	t.Setenv("DB_MIN_CONNECTIONS", "30")
	t.Setenv("DB_MAX_CONNECTIONS", "10")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "pool size")
}
