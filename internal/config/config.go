package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPPort  string
	JWTSecret string
	Database  DatabaseConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// RateLimitConfig holds the fixed-window policy for mutating endpoints
// and how often expired windows are swept.
type RateLimitConfig struct {
	MaxRequests   int
	Window        time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "lingualift"),
			User:     getEnv("DB_USER", "lingualift"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   getEnvInt("RATE_LIMIT_MAX", 60),
			Window:        time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 60000)) * time.Millisecond,
			SweepInterval: time.Duration(getEnvInt("RATE_LIMIT_SWEEP_SECONDS", 300)) * time.Second,
		},
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
