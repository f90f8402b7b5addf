// ABOUTME: CalendarEvent represents a scheduled item, optionally mirrored to Google
// ABOUTME: Synced=false marks local-only records that are never retried
package models

import "time"

// CalendarEvent represents a scheduled item
type CalendarEvent struct {
	ID              string    `json:"id"`
	GoogleEventID   string    `json:"google_event_id,omitempty"`
	Title           string    `json:"title"`
	EventDate       string    `json:"event_date"` // YYYY-MM-DD
	EventTime       string    `json:"event_time"` // HH:MM
	EndTime         string    `json:"end_time,omitempty"`
	Description     string    `json:"description,omitempty"`
	People          []string  `json:"people"`
	HasGoogleMeet   bool      `json:"has_google_meet"`
	GoogleMeetLink  string    `json:"google_meet_link,omitempty"`
	OriginalMessage string    `json:"original_message"`
	SourcePhone     string    `json:"source_phone,omitempty"`
	Synced          bool      `json:"synced"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
