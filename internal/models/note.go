// ABOUTME: Note represents a captured text note with a category
// ABOUTME: Stored in SQLite, created from classified SMS messages
package models

import "time"

// NoteCategory is the closed set of note categories
type NoteCategory string

const (
	CategoryMovie          NoteCategory = "movie"
	CategoryBook           NoteCategory = "book"
	CategoryIdea           NoteCategory = "idea"
	CategoryTask           NoteCategory = "task"
	CategoryPlan           NoteCategory = "plan"
	CategoryRecommendation NoteCategory = "recommendation"
	CategoryQuote          NoteCategory = "quote"
	CategoryOther          NoteCategory = "other"
)

// ValidCategory reports whether c is one of the known note categories
func ValidCategory(c NoteCategory) bool {
	switch c {
	case CategoryMovie, CategoryBook, CategoryIdea, CategoryTask,
		CategoryPlan, CategoryRecommendation, CategoryQuote, CategoryOther:
		return true
	}
	return false
}

// Note represents a captured note
type Note struct {
	ID               string       `json:"id"`
	Content          string       `json:"content"`
	Category         NoteCategory `json:"category"`
	ExtractedTitle   string       `json:"extracted_title,omitempty"`
	ExtractedContext string       `json:"extracted_context,omitempty"`
	SourcePhone      string       `json:"source_phone,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
