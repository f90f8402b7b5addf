// ABOUTME: Main entry point for the secondbrain webhook server
// ABOUTME: Wires storage, classifier, calendar, and SMS into the HTTP surface
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/harper/secondbrain/internal/calendar"
	"github.com/harper/secondbrain/internal/config"
	"github.com/harper/secondbrain/internal/core"
	"github.com/harper/secondbrain/internal/llm"
	"github.com/harper/secondbrain/internal/sms"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"github.com/harper/secondbrain/internal/timeparse"
	"github.com/harper/secondbrain/internal/webhook"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required: inbound messages cannot be classified without it")
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	classifier, err := llm.NewClassifier(&llm.ClassifierConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}

	var notifier sms.Notifier
	if cfg.TelnyxAPIKey != "" && cfg.TelnyxPhoneNumber != "" {
		notifier = sms.NewTelnyxClient(cfg.TelnyxAPIKey, cfg.TelnyxPhoneNumber)
	} else {
		log.Println("Warning: TELNYX_API_KEY/TELNYX_PHONE_NUMBER not set - replies will be logged, not sent")
		notifier = sms.LogNotifier{}
	}

	loc := cfg.Location()

	var cal *calendar.Client
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		cal = calendar.NewClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI,
			sqlite.NewTokenStore(db), loc)
	} else {
		log.Println("Warning: GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set - calendar events will be saved locally only")
	}

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
	if cal != nil {
		engineCfg.Calendar = cal
	}
	engine := core.NewEngine(engineCfg)

	srv := webhook.New(engine, cal)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("secondbrain webhook server listening on %s (db: %s, tz: %s)", addr, db.Path(), cfg.Timezone)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
