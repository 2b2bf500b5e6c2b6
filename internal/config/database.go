package config

import (
	"fmt"
	"time"

	"engagement-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc config từ environment variables và trả về DBConfig
func LoadDatabaseConfig() (*database.DBConfig, error) {
	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		Username: getEnv("DB_USER", "engagement"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "engagement_dev"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(getEnvInt("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(getEnvInt("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     getEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:     getEnvDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid DB_PORT: %d", cfg.Port)
	}
	if cfg.MaxConns < 1 || cfg.MinConns < 0 || cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("invalid pool size: min %d, max %d", cfg.MinConns, cfg.MaxConns)
	}

	return cfg, nil
}
