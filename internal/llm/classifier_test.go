// ABOUTME: Tests for classifier response parsing
// ABOUTME: Verifies JSON envelope decoding, fence stripping, and failure modes
package llm

import (
	"testing"

	"github.com/harper/secondbrain/internal/models"
)

func TestParseResponseMultipleItems(t *testing.T) {
	content := `{
		"items": [
			{"type": "note", "confidence": 0.9, "original_text": "Watch Dune",
				"data": {"category": "movie", "extracted_title": "Dune"}},
			{"type": "contact", "confidence": 0.85, "original_text": "Sarah - macro class",
				"data": {"name": "Sarah", "description": "macro class", "suggested_tags": []}}
		]
	}`

	items, err := parseResponse(content)
	if err != nil {
		t.Fatalf("parseResponse() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items count = %v, want 2", len(items))
	}
	if items[0].Kind != models.KindNote {
		t.Errorf("items[0].Kind = %v, want note", items[0].Kind)
	}
	if items[1].Kind != models.KindContact {
		t.Errorf("items[1].Kind = %v, want contact", items[1].Kind)
	}
	// List order is preserved; the reconciler depends on it
	if items[0].SourceText != "Watch Dune" {
		t.Errorf("items[0].SourceText = %v, want Watch Dune", items[0].SourceText)
	}
}

func TestParseResponseFencedJSON(t *testing.T) {
	content := "```json\n{\"items\": [{\"type\": \"note\", \"confidence\": 1, \"original_text\": \"x\", \"data\": {\"category\": \"idea\"}}]}\n```"

	items, err := parseResponse(content)
	if err != nil {
		t.Fatalf("parseResponse() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items count = %v, want 1", len(items))
	}
	if items[0].Note == nil || items[0].Note.Category != models.CategoryIdea {
		t.Error("fenced JSON should decode like bare JSON")
	}
}

func TestParseResponseRejectsGarbage(t *testing.T) {
	if _, err := parseResponse("I could not classify that, sorry!"); err == nil {
		t.Error("parseResponse() should reject non-JSON output")
	}

	if _, err := parseResponse(`{"items": []}`); err == nil {
		t.Error("parseResponse() should reject an empty item list")
	}
}

func TestNewClassifierRequiresKey(t *testing.T) {
	if _, err := NewClassifier(&ClassifierConfig{}); err == nil {
		t.Error("NewClassifier() should require an API key")
	}
}
