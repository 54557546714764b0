// Package config handles configuration loading for the Gharwa backend.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all configuration for the backend, built once at startup and
// passed by reference to the components that need it.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	JWTExpiry time.Duration

	Port        string
	FrontendURL string
	Environment string

	// PublicDir is the root of the public asset tree; uploaded images land
	// in Gallery/, Hero/ and reviews/ below it.
	PublicDir string

	// DeleteOrphanedMedia controls whether deleting a review also removes
	// its profile image from disk. Off by default so media is retained.
	DeleteOrphanedMedia bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DBHost:              GetEnvRequired("DB_HOST"),
		DBPort:              GetEnv("DB_PORT", "5432"),
		DBUser:              GetEnvRequired("DB_USER"),
		DBPassword:          GetEnvRequired("DB_PASSWORD"),
		DBName:              GetEnv("DB_NAME", "gharwa_auth"),
		JWTSecret:           GetEnvRequired("JWT_SECRET"),
		JWTExpiry:           parseDuration(GetEnv("JWT_EXPIRY", "24h"), 24*time.Hour),
		Port:                GetEnv("PORT", "8080"),
		FrontendURL:         GetEnv("FRONTEND_URL", "http://localhost:3000"),
		Environment:         GetEnv("ENVIRONMENT", "development"),
		PublicDir:           GetEnv("PUBLIC_DIR", "public"),
		DeleteOrphanedMedia: GetEnv("DELETE_ORPHANED_MEDIA", "false") == "true",
	}
}

// GetEnv returns the value of the environment variable or the default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvRequired returns the value of the environment variable or panics.
func GetEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
