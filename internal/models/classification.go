// ABOUTME: ClassifiedItem is the tagged union produced by the classification gateway
// ABOUTME: One item per semantic fragment of an inbound message, keyed by Kind
package models

import (
	"encoding/json"
	"fmt"
)

// ItemKind tags a classified item
type ItemKind string

const (
	KindNote     ItemKind = "note"
	KindContact  ItemKind = "contact"
	KindCalendar ItemKind = "calendar"
)

// NoteData is the note-specific classification payload
type NoteData struct {
	Category         NoteCategory `json:"category"`
	ExtractedTitle   string       `json:"extracted_title,omitempty"`
	ExtractedContext string       `json:"extracted_context,omitempty"`
}

// ContactData is the contact-specific classification payload
type ContactData struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SuggestedTags []string `json:"suggested_tags,omitempty"`
}

// CalendarData is the calendar-specific classification payload.
// Items of this kind carry both an explicit date cue and a clock-time cue;
// date-only scheduling language classifies as a task note instead.
type CalendarData struct {
	Title           string   `json:"title"`
	DateExpression  string   `json:"date_expression"`
	TimeExpression  string   `json:"time_expression"`
	DurationMinutes int      `json:"duration_minutes"`
	People          []string `json:"people,omitempty"`
	AddGoogleMeet   bool     `json:"add_google_meet"`
	Description     string   `json:"description,omitempty"`
}

// ClassifiedItem is one classified fragment of an inbound message.
// Exactly one of Note, Contact, Calendar is non-nil, matching Kind.
// Confidence is advisory only and never drives control flow.
type ClassifiedItem struct {
	Kind       ItemKind      `json:"type"`
	Confidence float64       `json:"confidence"`
	SourceText string        `json:"original_text"`
	Note       *NoteData     `json:"-"`
	Contact    *ContactData  `json:"-"`
	Calendar   *CalendarData `json:"-"`
}

// rawItem mirrors the wire shape with an undecoded data payload
type rawItem struct {
	Kind       ItemKind        `json:"type"`
	Confidence float64         `json:"confidence"`
	SourceText string          `json:"original_text"`
	Data       json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the kind-specific payload into the matching field
func (ci *ClassifiedItem) UnmarshalJSON(b []byte) error {
	var raw rawItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	ci.Kind = raw.Kind
	ci.Confidence = raw.Confidence
	ci.SourceText = raw.SourceText
	ci.Note = nil
	ci.Contact = nil
	ci.Calendar = nil

	switch raw.Kind {
	case KindNote:
		var data NoteData
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			return fmt.Errorf("note payload: %w", err)
		}
		if !ValidCategory(data.Category) {
			data.Category = CategoryOther
		}
		ci.Note = &data
	case KindContact:
		var data ContactData
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			return fmt.Errorf("contact payload: %w", err)
		}
		ci.Contact = &data
	case KindCalendar:
		var data CalendarData
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			return fmt.Errorf("calendar payload: %w", err)
		}
		ci.Calendar = &data
	default:
		return fmt.Errorf("unknown item kind %q", raw.Kind)
	}

	return nil
}

// MarshalJSON encodes the item back to the wire shape
func (ci ClassifiedItem) MarshalJSON() ([]byte, error) {
	var data interface{}
	switch ci.Kind {
	case KindNote:
		data = ci.Note
	case KindContact:
		data = ci.Contact
	case KindCalendar:
		data = ci.Calendar
	default:
		return nil, fmt.Errorf("unknown item kind %q", ci.Kind)
	}
	return json.Marshal(rawItemOut{
		Kind:       ci.Kind,
		Confidence: ci.Confidence,
		SourceText: ci.SourceText,
		Data:       data,
	})
}

type rawItemOut struct {
	Kind       ItemKind    `json:"type"`
	Confidence float64     `json:"confidence"`
	SourceText string      `json:"original_text"`
	Data       interface{} `json:"data"`
}

// FallbackNoteItem wraps a raw message as a single low-confidence "other"
// note item. The gateway returns this whenever classification fails, so
// downstream code never sees an empty item list.
func FallbackNoteItem(message string) ClassifiedItem {
	return ClassifiedItem{
		Kind:       KindNote,
		Confidence: 0.5,
		SourceText: message,
		Note: &NoteData{
			Category:         CategoryOther,
			ExtractedContext: message,
		},
	}
}
