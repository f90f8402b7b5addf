// ABOUTME: Shared wiring and formatting helpers for CLI commands
// ABOUTME: Consolidates store setup used by capture, lookup, and mcp commands
package commands

import (
	"fmt"
	"time"

	"github.com/harper/secondbrain/internal/calendar"
	"github.com/harper/secondbrain/internal/config"
	"github.com/harper/secondbrain/internal/core"
	"github.com/harper/secondbrain/internal/llm"
	"github.com/harper/secondbrain/internal/sms"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"github.com/harper/secondbrain/internal/timeparse"
)

// openDB opens the database honoring the --db flag
func openDB(cfg *config.Config) (*sqlite.DB, error) {
	path := cfg.DBPath
	if dbPath != "" {
		path = dbPath
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// calendarClient builds the Google Calendar client, or nil when no Google
// credentials are configured
func calendarClient(cfg *config.Config, db *sqlite.DB) *calendar.Client {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil
	}
	return calendar.NewClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI,
		sqlite.NewTokenStore(db), cfg.Location())
}

// buildEngine wires a full intake engine over the given database. The
// notifier decides where confirmation replies go (stdout for the CLI,
// the tool response for MCP).
func buildEngine(cfg *config.Config, db *sqlite.DB, notifier sms.Notifier) (*core.Engine, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required to classify messages")
	}

	classifier, err := llm.NewClassifier(&llm.ClassifierConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("creating classifier: %w", err)
	}

	loc := cfg.Location()

	engineCfg := core.EngineConfig{
		Classifier:      classifier,
		Notes:           sqlite.NewNoteStore(db),
		Contacts:        sqlite.NewContactStore(db),
		Events:          sqlite.NewEventStore(db),
		States:          sqlite.NewStateStore(db),
		Resolver:        timeparse.NewResolver(loc),
		Notifier:        notifier,
		Location:        loc,
		ConversationTTL: cfg.ConversationTTL,
	}
	if cal := calendarClient(cfg, db); cal != nil {
		engineCfg.Calendar = cal
	}

	return core.NewEngine(engineCfg), nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
