// ABOUTME: Note storage operations for SQLite
// ABOUTME: Implements CRUD and listing for captured notes
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/secondbrain/internal/models"
)

// NoteStore handles note persistence
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// Save inserts or updates a note
func (s *NoteStore) Save(note *models.Note) error {
	now := time.Now()
	createdAt := note.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO notes (id, content, category, extracted_title, extracted_context, source_phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			category = excluded.category,
			extracted_title = excluded.extracted_title,
			extracted_context = excluded.extracted_context,
			updated_at = excluded.updated_at
	`, note.ID, note.Content, string(note.Category), nullString(note.ExtractedTitle),
		nullString(note.ExtractedContext), nullString(note.SourcePhone), createdAt, now)

	return err
}

// GetByID retrieves a note by its ID
func (s *NoteStore) GetByID(id string) (*models.Note, error) {
	row := s.db.QueryRow(`
		SELECT id, content, category, extracted_title, extracted_context, source_phone, created_at, updated_at
		FROM notes
		WHERE id = ?
	`, id)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// List retrieves notes ordered newest first
func (s *NoteStore) List(limit int) ([]models.Note, error) {
	rows, err := s.db.Query(`
		SELECT id, content, category, extracted_title, extracted_context, source_phone, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanNotes(rows)
}

// ListByCategory retrieves notes of one category, newest first
func (s *NoteStore) ListByCategory(category models.NoteCategory, limit int) ([]models.Note, error) {
	rows, err := s.db.Query(`
		SELECT id, content, category, extracted_title, extracted_context, source_phone, created_at, updated_at
		FROM notes
		WHERE category = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, string(category), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanNotes(rows)
}

// Search searches note content and titles for a substring
func (s *NoteStore) Search(query string, limit int) ([]models.Note, error) {
	likePattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, content, category, extracted_title, extracted_context, source_phone, created_at, updated_at
		FROM notes
		WHERE content LIKE ? OR extracted_title LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, likePattern, likePattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanNotes(rows)
}

// Delete deletes a note by its ID
func (s *NoteStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note     models.Note
		category string
		title    sql.NullString
		context  sql.NullString
		phone    sql.NullString
	)

	err := row.Scan(&note.ID, &note.Content, &category, &title, &context, &phone,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}

	note.Category = models.NoteCategory(category)
	note.ExtractedTitle = fromNull(title)
	note.ExtractedContext = fromNull(context)
	note.SourcePhone = fromNull(phone)

	return &note, nil
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}
