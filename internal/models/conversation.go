// ABOUTME: ConversationState holds the single pending multi-turn exchange per phone
// ABOUTME: Expiry is enforced lazily at read time, never by a background sweep
package models

import "time"

// ConversationStateType tags the kind of pending exchange
type ConversationStateType string

const (
	StateAwaitingDuplicateResponse ConversationStateType = "awaiting_duplicate_response"
)

// PendingAction tags what the pending payload should become once resolved
type PendingAction string

const (
	ActionCreateContact PendingAction = "create_contact"
)

// PendingContact is the contact payload parked while we wait for a YES/NO
type PendingContact struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SuggestedTags []string `json:"suggested_tags"`
}

// ConversationState is the outstanding dialogue for one phone number.
// At most one live state exists per number; a new state replaces the old one.
type ConversationState struct {
	ID              string                `json:"id"`
	PhoneNumber     string                `json:"phone_number"`
	State           ConversationStateType `json:"state"`
	PendingAction   PendingAction         `json:"pending_action"`
	PendingContact  *PendingContact       `json:"pending_data,omitempty"`
	RelatedRecordID string                `json:"related_record_id,omitempty"`
	ExpiresAt       time.Time             `json:"expires_at"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Live reports whether the state has not yet expired at the given instant
func (s *ConversationState) Live(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
