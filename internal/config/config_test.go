// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Verifies defaults, env overrides, and rejection of bad values
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any ambient overrides; empty values read as unset
	for _, key := range []string{"SECONDBRAIN_MODEL", "TIMEZONE", "CONVERSATION_TTL", "OPENAI_MAX_RETRIES", "PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %v, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %v, want America/New_York", cfg.Timezone)
	}
	if cfg.ConversationTTL != 30*time.Minute {
		t.Errorf("ConversationTTL = %v, want 30m", cfg.ConversationTTL)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want 3", cfg.MaxRetries)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %v, want 8080", cfg.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SECONDBRAIN_MODEL", "gpt-4o")
	t.Setenv("TIMEZONE", "America/Chicago")
	t.Setenv("CONVERSATION_TTL", "10m")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %v, want gpt-4o", cfg.ChatModel)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Timezone = %v, want America/Chicago", cfg.Timezone)
	}
	if cfg.ConversationTTL != 10*time.Minute {
		t.Errorf("ConversationTTL = %v, want 10m", cfg.ConversationTTL)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %v, want 9090", cfg.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{Timezone: "America/New_York", ConversationTTL: time.Minute, Port: 8080, MaxRetries: 20}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject MaxRetries > 10")
	}

	cfg = &Config{Timezone: "Not/AZone", ConversationTTL: time.Minute, Port: 8080}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unknown timezone")
	}

	cfg = &Config{Timezone: "UTC", ConversationTTL: 0, Port: 8080}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject non-positive TTL")
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "America/New_York"}
	loc := cfg.Location()
	if loc.String() != "America/New_York" {
		t.Errorf("Location() = %v, want America/New_York", loc)
	}
}
