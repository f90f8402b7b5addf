// ABOUTME: Centralized configuration for the second brain services
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/secondbrain/internal/storage/sqlite"
)

// Config holds all configuration for the capture system
type Config struct {
	// Datastore
	DBPath string

	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Telnyx settings
	TelnyxAPIKey      string
	TelnyxPhoneNumber string

	// Google Calendar settings
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// Scheduling reference timezone; "tomorrow 3pm" resolves against this
	// zone's wall clock, never the server's local time
	Timezone string

	// Duplicate dialogue lifetime
	ConversationTTL time.Duration

	// Webhook server
	Port int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:             getEnv("SECONDBRAIN_DB", sqlite.DefaultDBPath()),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("SECONDBRAIN_MODEL", "gpt-4o-mini"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		TelnyxAPIKey:       os.Getenv("TELNYX_API_KEY"),
		TelnyxPhoneNumber:  os.Getenv("TELNYX_PHONE_NUMBER"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		Timezone:           getEnv("TIMEZONE", "America/New_York"),
		ConversationTTL:    getEnvDuration("CONVERSATION_TTL", 30*time.Minute),
		Port:               getEnvInt("PORT", 8080),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ConversationTTL <= 0 {
		return fmt.Errorf("CONVERSATION_TTL must be positive, got %v", c.ConversationTTL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be 1-65535, got %d", c.Port)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid IANA zone: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the reference timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
