package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTSecret         = "your-secret-key-change-in-production"
	defaultFingerprintSecret = "change-me-fingerprint-secret"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Abuse   AbuseConfig
	HTTP    HTTPConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

// StorageConfig selects the engagement store backend.
type StorageConfig struct {
	Driver     string // postgres | sqlite
	SQLitePath string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AbuseConfig keys the origin fingerprint. Rotating the secret resets every
// review cooldown.
type AbuseConfig struct {
	FingerprintSecret string
}

type HTTPConfig struct {
	CORSOrigins   []string
	ThrottleRPS   float64
	ThrottleBurst int
}

type CacheConfig struct {
	ReviewTTL time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Engagement API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			SQLitePath: getEnv("SQLITE_PATH", "engagement.db"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Abuse: AbuseConfig{
			FingerprintSecret: getEnv("FINGERPRINT_SECRET", defaultFingerprintSecret),
		},
		HTTP: HTTPConfig{
			CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"*"}),
			ThrottleRPS:   getEnvFloat("THROTTLE_RPS", 1.0/3.0),
			ThrottleBurst: getEnvInt("THROTTLE_BURST", 5),
		},
		Cache: CacheConfig{
			ReviewTTL: getEnvDuration("REVIEW_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Storage.Driver)
	}

	if c.HTTP.ThrottleRPS <= 0 || c.HTTP.ThrottleBurst < 1 {
		return fmt.Errorf("THROTTLE_RPS must be > 0 and THROTTLE_BURST >= 1")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Abuse.FingerprintSecret == defaultFingerprintSecret {
			return fmt.Errorf("FINGERPRINT_SECRET must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
