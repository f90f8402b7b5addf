// ABOUTME: Calendar event storage operations for SQLite
// ABOUTME: Persists both synced and local-only events
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/secondbrain/internal/models"
)

// EventStore handles calendar event persistence
type EventStore struct {
	db *DB
}

// NewEventStore creates a new EventStore
func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db}
}

// Save inserts or updates a calendar event
func (s *EventStore) Save(event *models.CalendarEvent) error {
	now := time.Now()
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	people, err := encodeStrings(event.People)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO calendar_events (id, google_event_id, title, event_date, event_time, end_time,
			description, people, has_google_meet, google_meet_link, original_message, source_phone,
			synced, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			google_event_id = excluded.google_event_id,
			title = excluded.title,
			event_date = excluded.event_date,
			event_time = excluded.event_time,
			end_time = excluded.end_time,
			description = excluded.description,
			people = excluded.people,
			has_google_meet = excluded.has_google_meet,
			google_meet_link = excluded.google_meet_link,
			synced = excluded.synced,
			updated_at = excluded.updated_at
	`, event.ID, nullString(event.GoogleEventID), event.Title, event.EventDate, event.EventTime,
		nullString(event.EndTime), nullString(event.Description), people, event.HasGoogleMeet,
		nullString(event.GoogleMeetLink), event.OriginalMessage, nullString(event.SourcePhone),
		event.Synced, createdAt, now)

	return err
}

// GetByID retrieves an event by its ID
func (s *EventStore) GetByID(id string) (*models.CalendarEvent, error) {
	row := s.db.QueryRow(`
		SELECT id, google_event_id, title, event_date, event_time, end_time, description, people,
			has_google_meet, google_meet_link, original_message, source_phone, synced, created_at, updated_at
		FROM calendar_events
		WHERE id = ?
	`, id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// List retrieves events ordered by event date, soonest last created first
func (s *EventStore) List(limit int) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, google_event_id, title, event_date, event_time, end_time, description, people,
			has_google_meet, google_meet_link, original_message, source_phone, synced, created_at, updated_at
		FROM calendar_events
		ORDER BY event_date DESC, event_time DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []models.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// Delete deletes an event by its ID
func (s *EventStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM calendar_events WHERE id = ?", id)
	return err
}

func scanEvent(row rowScanner) (*models.CalendarEvent, error) {
	var (
		event    models.CalendarEvent
		googleID sql.NullString
		endTime  sql.NullString
		desc     sql.NullString
		people   string
		meetLink sql.NullString
		phone    sql.NullString
	)

	err := row.Scan(&event.ID, &googleID, &event.Title, &event.EventDate, &event.EventTime,
		&endTime, &desc, &people, &event.HasGoogleMeet, &meetLink, &event.OriginalMessage,
		&phone, &event.Synced, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}

	event.GoogleEventID = fromNull(googleID)
	event.EndTime = fromNull(endTime)
	event.Description = fromNull(desc)
	event.GoogleMeetLink = fromNull(meetLink)
	event.SourcePhone = fromNull(phone)
	event.People, err = decodeStrings(people)
	if err != nil {
		return nil, err
	}

	return &event, nil
}
