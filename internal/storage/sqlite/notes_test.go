// ABOUTME: Tests for note storage operations
// ABOUTME: Verifies CRUD, category listing, and search
package sqlite

import (
	"testing"

	"github.com/harper/secondbrain/internal/models"
)

func TestNoteCRUD(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewNoteStore(db)

	note := &models.Note{
		ID:             "note_1",
		Content:        "Watch Oppenheimer",
		Category:       models.CategoryMovie,
		ExtractedTitle: "Oppenheimer",
		SourcePhone:    "+15551234567",
	}

	if err := store.Save(note); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	retrieved, err := store.GetByID("note_1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if retrieved == nil {
		t.Fatal("GetByID() returned nil")
	}
	if retrieved.Category != models.CategoryMovie {
		t.Errorf("Category = %v, want movie", retrieved.Category)
	}
	if retrieved.ExtractedTitle != "Oppenheimer" {
		t.Errorf("ExtractedTitle = %v, want Oppenheimer", retrieved.ExtractedTitle)
	}
	if retrieved.SourcePhone != "+15551234567" {
		t.Errorf("SourcePhone = %v, want +15551234567", retrieved.SourcePhone)
	}

	// Update via Save
	note.Content = "Watch Oppenheimer (IMAX)"
	if err := store.Save(note); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}
	updated, err := store.GetByID("note_1")
	if err != nil {
		t.Fatalf("GetByID() after update error = %v", err)
	}
	if updated.Content != "Watch Oppenheimer (IMAX)" {
		t.Errorf("Content = %v, want updated content", updated.Content)
	}

	if err := store.Delete("note_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	deleted, err := store.GetByID("note_1")
	if err != nil {
		t.Fatalf("GetByID() after delete error = %v", err)
	}
	if deleted != nil {
		t.Error("GetByID() should return nil after delete")
	}
}

func TestNoteListByCategory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewNoteStore(db)

	notes := []*models.Note{
		{ID: "n1", Content: "Watch Dune", Category: models.CategoryMovie},
		{ID: "n2", Content: "Call mom", Category: models.CategoryTask},
		{ID: "n3", Content: "Watch Arrival", Category: models.CategoryMovie},
	}
	for _, n := range notes {
		if err := store.Save(n); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	movies, err := store.ListByCategory(models.CategoryMovie, 10)
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("ListByCategory(movie) count = %v, want 2", len(movies))
	}

	all, err := store.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() count = %v, want 3", len(all))
	}
}

func TestNoteSearch(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewNoteStore(db)

	notes := []*models.Note{
		{ID: "n1", Content: "Try the ramen place downtown", Category: models.CategoryRecommendation},
		{ID: "n2", Content: "Book flights for summer", Category: models.CategoryTask},
		{ID: "n3", Content: "Ramen cookbook", Category: models.CategoryBook, ExtractedTitle: "Ramen cookbook"},
	}
	for _, n := range notes {
		if err := store.Save(n); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	results, err := store.Search("ramen", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Search('ramen') count = %v, want 2", len(results))
	}
}
