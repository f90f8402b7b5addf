// ABOUTME: Contact storage operations for SQLite
// ABOUTME: Lookup by normalized name drives duplicate detection
package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/harper/secondbrain/internal/models"
)

// ContactStore handles contact persistence
type ContactStore struct {
	db *DB
}

// NewContactStore creates a new ContactStore
func NewContactStore(db *DB) *ContactStore {
	return &ContactStore{db: db}
}

// Save inserts or updates a contact
func (s *ContactStore) Save(contact *models.Contact) error {
	now := time.Now()
	createdAt := contact.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if contact.NameNormalized == "" {
		contact.NameNormalized = models.NormalizeName(contact.Name)
	}

	tags, err := encodeStrings(contact.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO contacts (id, name, name_normalized, description, tags, source_phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			name_normalized = excluded.name_normalized,
			description = excluded.description,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`, contact.ID, contact.Name, contact.NameNormalized, nullString(contact.Description),
		tags, nullString(contact.SourcePhone), createdAt, now)

	return err
}

// GetByID retrieves a contact by its ID
func (s *ContactStore) GetByID(id string) (*models.Contact, error) {
	row := s.db.QueryRow(`
		SELECT id, name, name_normalized, description, tags, source_phone, created_at, updated_at
		FROM contacts
		WHERE id = ?
	`, id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// GetByNormalizedName retrieves the most recently updated contact with the
// given normalized name, or nil when no contact matches. True duplicates can
// coexist (NO replies create them); the newest one is the merge target.
func (s *ContactStore) GetByNormalizedName(normalized string) (*models.Contact, error) {
	row := s.db.QueryRow(`
		SELECT id, name, name_normalized, description, tags, source_phone, created_at, updated_at
		FROM contacts
		WHERE name_normalized = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`, normalized)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// List retrieves contacts ordered newest first
func (s *ContactStore) List(limit int) ([]models.Contact, error) {
	rows, err := s.db.Query(`
		SELECT id, name, name_normalized, description, tags, source_phone, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

// Delete deletes a contact by its ID
func (s *ContactStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM contacts WHERE id = ?", id)
	return err
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var (
		contact models.Contact
		desc    sql.NullString
		tags    string
		phone   sql.NullString
	)

	err := row.Scan(&contact.ID, &contact.Name, &contact.NameNormalized, &desc, &tags,
		&phone, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return nil, err
	}

	contact.Description = fromNull(desc)
	contact.SourcePhone = fromNull(phone)
	contact.Tags, err = decodeStrings(tags)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// encodeStrings serializes a string slice as a JSON text column
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeStrings deserializes a JSON text column into a string slice
func decodeStrings(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}
