package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Vision API configuration
	VisionAPIKey string
	VisionAPIURL string
}

// LoadConfig creates a new Config instance from environment variables.
// Sensitive values (API key, JWT secret, DB password) may alternatively be
// supplied through <NAME>_FILE paths, matching Docker secret mounts.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getenv("SERVER_PORT", "8080"),
		ServerHost: getenv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "mealmate"),
		DBPassword: secret("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "mealmate"),
		DBSSLMode:  getenv("DB_SSL_MODE", "disable"),

		RedisHost:     getenv("REDIS_HOST", "localhost"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: secret("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: secret("JWT_SECRET"),

		VisionAPIKey: secret("VISION_API_KEY"),
		VisionAPIURL: getenv("VISION_API_URL", "https://api.openai.com/v1/chat/completions"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getenv reads an environment variable with a fallback default.
func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// secret reads a sensitive value from the environment, falling back to a
// <NAME>_FILE path pointing at a mounted secret file.
func secret(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	path := os.Getenv(key + "_FILE")
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
