// ABOUTME: Tests for the ClassifiedItem tagged union
// ABOUTME: Verifies kind-keyed payload decoding and the fallback note item
package models

import (
	"encoding/json"
	"testing"
)

func TestClassifiedItemUnmarshalNote(t *testing.T) {
	raw := `{
		"type": "note",
		"confidence": 0.92,
		"original_text": "Watch Oppenheimer",
		"data": {"category": "movie", "extracted_title": "Oppenheimer"}
	}`

	var item ClassifiedItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if item.Kind != KindNote {
		t.Errorf("Kind = %v, want note", item.Kind)
	}
	if item.Note == nil {
		t.Fatal("Note payload should be set")
	}
	if item.Contact != nil || item.Calendar != nil {
		t.Error("only the note payload should be set")
	}
	if item.Note.Category != CategoryMovie {
		t.Errorf("Category = %v, want movie", item.Note.Category)
	}
	if item.Note.ExtractedTitle != "Oppenheimer" {
		t.Errorf("ExtractedTitle = %v, want Oppenheimer", item.Note.ExtractedTitle)
	}
}

func TestClassifiedItemUnmarshalContact(t *testing.T) {
	raw := `{
		"type": "contact",
		"confidence": 0.88,
		"original_text": "Sarah - macro class",
		"data": {"name": "Sarah", "description": "macro class", "suggested_tags": ["class"]}
	}`

	var item ClassifiedItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if item.Kind != KindContact {
		t.Errorf("Kind = %v, want contact", item.Kind)
	}
	if item.Contact == nil {
		t.Fatal("Contact payload should be set")
	}
	if item.Contact.Name != "Sarah" {
		t.Errorf("Name = %v, want Sarah", item.Contact.Name)
	}
}

func TestClassifiedItemUnmarshalCalendar(t *testing.T) {
	raw := `{
		"type": "calendar",
		"confidence": 0.95,
		"original_text": "Coffee with Alex tomorrow 3pm",
		"data": {
			"title": "Coffee with Alex",
			"date_expression": "tomorrow",
			"time_expression": "3pm",
			"duration_minutes": 30,
			"people": ["Alex"],
			"add_google_meet": false
		}
	}`

	var item ClassifiedItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if item.Kind != KindCalendar {
		t.Errorf("Kind = %v, want calendar", item.Kind)
	}
	if item.Calendar == nil {
		t.Fatal("Calendar payload should be set")
	}
	if item.Calendar.DateExpression != "tomorrow" {
		t.Errorf("DateExpression = %v, want tomorrow", item.Calendar.DateExpression)
	}
	if item.Calendar.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %v, want 30", item.Calendar.DurationMinutes)
	}
}

func TestClassifiedItemUnknownKind(t *testing.T) {
	raw := `{"type": "widget", "confidence": 1.0, "original_text": "x", "data": {}}`

	var item ClassifiedItem
	if err := json.Unmarshal([]byte(raw), &item); err == nil {
		t.Error("Unmarshal() should reject unknown kinds")
	}
}

func TestClassifiedItemInvalidCategoryFallsBack(t *testing.T) {
	raw := `{
		"type": "note",
		"confidence": 0.7,
		"original_text": "something",
		"data": {"category": "miscellaneous"}
	}`

	var item ClassifiedItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if item.Note.Category != CategoryOther {
		t.Errorf("Category = %v, want other for unknown category", item.Note.Category)
	}
}

func TestFallbackNoteItem(t *testing.T) {
	item := FallbackNoteItem("garbled message")

	if item.Kind != KindNote {
		t.Errorf("Kind = %v, want note", item.Kind)
	}
	if item.Note == nil || item.Note.Category != CategoryOther {
		t.Error("fallback should be an 'other' note")
	}
	if item.SourceText != "garbled message" {
		t.Errorf("SourceText = %v, want original message", item.SourceText)
	}
}
