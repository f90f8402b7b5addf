// ABOUTME: Tests for the notes, contacts, and events listing commands
// ABOUTME: Runs commands against a temp database seeded through the stores

package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/storage/sqlite"
)

// seedDB creates a temp database file with a few records and points the
// global --db flag at it
func seedDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secondbrain.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.NewNoteStore(db).Save(&models.Note{
		ID:             uuid.New().String(),
		Content:        "Watch Oppenheimer",
		Category:       models.CategoryMovie,
		ExtractedTitle: "Oppenheimer",
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := sqlite.NewContactStore(db).Save(&models.Contact{
		ID:          uuid.New().String(),
		Name:        "Sarah",
		Description: "macro class",
		Tags:        []string{"school"},
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := sqlite.NewEventStore(db).Save(&models.CalendarEvent{
		ID:              uuid.New().String(),
		Title:           "Dinner with Sam",
		EventDate:       "2026-09-04",
		EventTime:       "19:00",
		OriginalMessage: "Dinner with Sam friday 7pm",
		Synced:          false,
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	dbPath = path
	t.Cleanup(func() { dbPath = "" })
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v", args, err)
	}
	return output.String()
}

func TestNotesCommandListsSavedNotes(t *testing.T) {
	seedDB(t)

	out := runCommand(t, "notes")
	if !strings.Contains(out, "Oppenheimer") || !strings.Contains(out, "movie") {
		t.Errorf("output = %q, want the seeded note", out)
	}
}

func TestNotesCommandCategoryFilter(t *testing.T) {
	seedDB(t)

	out := runCommand(t, "notes", "--category", "book")
	if !strings.Contains(out, "No notes found") {
		t.Errorf("output = %q, want empty book list", out)
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"notes", "--category", "bogus"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("unknown category should error")
	}
	notesCategory = ""
}

func TestContactsCommandListsSavedContacts(t *testing.T) {
	seedDB(t)

	out := runCommand(t, "contacts")
	if !strings.Contains(out, "Sarah") || !strings.Contains(out, "macro class") {
		t.Errorf("output = %q, want the seeded contact", out)
	}
}

func TestEventsCommandMarksLocalOnly(t *testing.T) {
	seedDB(t)

	out := runCommand(t, "events")
	if !strings.Contains(out, "Dinner with Sam") {
		t.Errorf("output = %q, want the seeded event", out)
	}
	if !strings.Contains(out, "local only") {
		t.Errorf("output = %q, want unsynced event flagged local only", out)
	}
}

func TestEventsDeleteUnknownID(t *testing.T) {
	seedDB(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"events", "--delete", "does-not-exist"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("deleting an unknown event should error")
	}
	eventsDelete = ""
}
