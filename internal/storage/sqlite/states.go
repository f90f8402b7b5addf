// ABOUTME: Conversation state storage keyed by phone number
// ABOUTME: Upsert replaces any prior state; expiry is checked at read time
package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/harper/secondbrain/internal/models"
)

// StateStore handles pending conversation state persistence
type StateStore struct {
	db *DB
}

// NewStateStore creates a new StateStore
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Upsert saves a conversation state, replacing any existing state for the
// same phone number. At most one state per number exists afterwards.
func (s *StateStore) Upsert(state *models.ConversationState) error {
	now := time.Now()
	if state.ID == "" {
		state.ID = uuid.New().String()
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}

	var pending sql.NullString
	if state.PendingContact != nil {
		data, err := json.Marshal(state.PendingContact)
		if err != nil {
			return err
		}
		pending = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO conversation_states (id, phone_number, state, pending_action, pending_data,
			related_record_id, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phone_number) DO UPDATE SET
			state = excluded.state,
			pending_action = excluded.pending_action,
			pending_data = excluded.pending_data,
			related_record_id = excluded.related_record_id,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, state.ID, state.PhoneNumber, string(state.State), nullString(string(state.PendingAction)),
		pending, nullString(state.RelatedRecordID), state.ExpiresAt, state.CreatedAt, now)

	return err
}

// GetLive retrieves the state for a phone number if it has not expired.
// Expired rows are ignored, not deleted; expiry is enforced lazily here.
func (s *StateStore) GetLive(phoneNumber string, now time.Time) (*models.ConversationState, error) {
	row := s.db.QueryRow(`
		SELECT id, phone_number, state, pending_action, pending_data, related_record_id,
			expires_at, created_at, updated_at
		FROM conversation_states
		WHERE phone_number = ? AND expires_at > ?
	`, phoneNumber, now)

	state, err := scanState(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Delete removes the state for a phone number, expired or not
func (s *StateStore) Delete(phoneNumber string) error {
	_, err := s.db.Exec("DELETE FROM conversation_states WHERE phone_number = ?", phoneNumber)
	return err
}

func scanState(row rowScanner) (*models.ConversationState, error) {
	var (
		state     models.ConversationState
		stateTag  string
		action    sql.NullString
		pending   sql.NullString
		relatedID sql.NullString
	)

	err := row.Scan(&state.ID, &state.PhoneNumber, &stateTag, &action, &pending, &relatedID,
		&state.ExpiresAt, &state.CreatedAt, &state.UpdatedAt)
	if err != nil {
		return nil, err
	}

	state.State = models.ConversationStateType(stateTag)
	state.PendingAction = models.PendingAction(fromNull(action))
	state.RelatedRecordID = fromNull(relatedID)

	if pending.Valid && pending.String != "" {
		var contact models.PendingContact
		if err := json.Unmarshal([]byte(pending.String), &contact); err != nil {
			return nil, err
		}
		state.PendingContact = &contact
	}

	return &state, nil
}
