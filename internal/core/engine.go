// ABOUTME: Intake engine orchestrating the inbound message flow
// ABOUTME: Dialogue replies short-circuit classification; everything else is classify-reconcile-confirm
package core

import (
	"context"
	"log"
	"time"

	"github.com/harper/secondbrain/internal/calendar"
	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/sms"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"github.com/harper/secondbrain/internal/timeparse"
)

// DefaultConversationTTL bounds how long a pending question stays answerable
const DefaultConversationTTL = 30 * time.Minute

// Classifier turns a raw message into an ordered list of classified items
type Classifier interface {
	Classify(message string) []models.ClassifiedItem
}

// CalendarProvider is the slice of the Google Calendar client the engine uses
type CalendarProvider interface {
	IsConnected(ctx context.Context) calendar.Status
	CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.EventResult, error)
}

// Engine runs inbound messages through the capture flow: pending-dialogue
// check, classification, reconciliation against stored records, and a
// confirmation SMS. It never errors back to the transport; every failure
// degrades to something persisted or a reply asking the sender to retry.
type Engine struct {
	classifier Classifier
	notes      *sqlite.NoteStore
	contacts   *sqlite.ContactStore
	events     *sqlite.EventStore
	states     *sqlite.StateStore
	resolver   *timeparse.Resolver
	calendar   CalendarProvider
	notifier   sms.Notifier
	loc        *time.Location
	ttl        time.Duration
	now        func() time.Time
}

// EngineConfig wires the engine's collaborators
type EngineConfig struct {
	Classifier      Classifier
	Notes           *sqlite.NoteStore
	Contacts        *sqlite.ContactStore
	Events          *sqlite.EventStore
	States          *sqlite.StateStore
	Resolver        *timeparse.Resolver
	Calendar        CalendarProvider
	Notifier        sms.Notifier
	Location        *time.Location
	ConversationTTL time.Duration
}

// NewEngine creates an intake engine
func NewEngine(cfg EngineConfig) *Engine {
	ttl := cfg.ConversationTTL
	if ttl <= 0 {
		ttl = DefaultConversationTTL
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Engine{
		classifier: cfg.Classifier,
		notes:      cfg.Notes,
		contacts:   cfg.Contacts,
		events:     cfg.Events,
		states:     cfg.States,
		resolver:   cfg.Resolver,
		calendar:   cfg.Calendar,
		notifier:   cfg.Notifier,
		loc:        loc,
		ttl:        ttl,
		now:        time.Now,
	}
}

// HandleInbound processes one inbound message from a phone number.
// A live pending dialogue consumes the message as an answer; otherwise the
// message is classified, each item reconciled in order, and a confirmation
// sent back.
func (e *Engine) HandleInbound(ctx context.Context, from, message string) {
	state, err := e.states.GetLive(from, e.now())
	if err != nil {
		log.Printf("engine: failed to read conversation state for %s: %v", from, err)
		state = nil
	}

	if state != nil && state.State == models.StateAwaitingDuplicateResponse {
		e.handleDuplicateResponse(ctx, from, message, state)
		return
	}

	items := e.classifier.Classify(message)
	results := e.processItems(ctx, from, message, items)

	if reply, ok := buildConfirmation(results); ok {
		e.notifier.Send(from, reply)
	}
}
