package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client core and the mock API
type Config struct {
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Log     LogConfig
	MockAPI MockAPIConfig
}

// APIConfig configures the outbound REST client
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig configures the session store and router
type SessionConfig struct {
	StoreType    string // "memory" or "redis"
	PollInterval time.Duration
}

// RedisConfig configures the optional Redis session store
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig configures logging
type LogConfig struct {
	Level  string
	Format string
}

// MockAPIConfig configures the development mock backend
type MockAPIConfig struct {
	Host      string
	Port      int
	JWTSecret string
	DBDSN     string
	DBLog     string
}

// Load reads configuration from .env and environment variables
func Load() (*Config, error) {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),
			Timeout: getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			StoreType:    getEnv("SESSION_STORE", "memory"),
			PollInterval: getEnvDuration("SESSION_POLL_INTERVAL", 2*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MockAPI: MockAPIConfig{
			Host:      getEnv("MOCKAPI_HOST", "0.0.0.0"),
			Port:      getEnvInt("MOCKAPI_PORT", 8000),
			JWTSecret: getEnv("MOCKAPI_JWT_SECRET", "dev-secret-change-me"),
			DBDSN:     getEnv("MOCKAPI_DB_DSN", ""),
			DBLog:     getEnv("MOCKAPI_DB_LOG", "warn"),
		},
	}

	return cfg, nil
}

// Validate checks required configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.Session.PollInterval <= 0 {
		return fmt.Errorf("SESSION_POLL_INTERVAL must be positive")
	}
	switch c.Session.StoreType {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE: %s", c.Session.StoreType)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
