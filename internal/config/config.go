// Package config manages application configuration
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string

	// Database
	DatabaseURL string

	// Security
	SecretKey string // For JWT signing

	// Session settings
	SessionDuration time.Duration

	// Practice settings
	TickInterval     time.Duration // Elapsed-time tick while recording
	FeedbackDelay    time.Duration // Simulated processing before feedback
	PlaybackDuration time.Duration // Simulated playback length
	CaptureEnabled   bool          // False simulates a denied microphone

	// Context image settings
	ImageDelay time.Duration // Simulated generation latency
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:             getEnv("GROOMIFY_PORT", "8080"),
		Environment:      getEnv("GROOMIFY_ENV", "development"),
		LogLevel:         getEnv("GROOMIFY_LOG_LEVEL", "info"),
		DatabaseURL:      getEnv("GROOMIFY_DATABASE_URL", "groomify.db"),
		SecretKey:        getEnv("GROOMIFY_SECRET_KEY", "dev-secret-key-change-in-production"),
		SessionDuration:  getDurationEnv("GROOMIFY_SESSION_DURATION", 24*time.Hour),
		TickInterval:     getDurationEnv("GROOMIFY_TICK_INTERVAL", time.Second),
		FeedbackDelay:    getDurationEnv("GROOMIFY_FEEDBACK_DELAY", 2*time.Second),
		PlaybackDuration: getDurationEnv("GROOMIFY_PLAYBACK_DURATION", 3*time.Second),
		CaptureEnabled:   getBoolEnv("GROOMIFY_CAPTURE_ENABLED", true),
		ImageDelay:       getDurationEnv("GROOMIFY_IMAGE_DELAY", 2*time.Second),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
