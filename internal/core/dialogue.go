// ABOUTME: Resolution of the pending duplicate-contact question
// ABOUTME: State is deleted before acting, so every answer path starts clean
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/secondbrain/internal/models"
)

// duplicateQuestion formats the YES/NO prompt for an existing contact
func duplicateQuestion(existing *models.Contact) string {
	desc := existing.Description
	if desc == "" {
		desc = "no description"
	} else {
		desc = truncateRunes(desc, 50)
	}
	return fmt.Sprintf("Found %q: %q. Same person? Reply YES to update, NO for new entry.",
		existing.Name, desc+"...")
}

// handleDuplicateResponse consumes the sender's answer to a pending
// duplicate question. The parked state is cleared first regardless of
// outcome; an unclear answer re-arms it with a fresh expiry.
func (e *Engine) handleDuplicateResponse(_ context.Context, from, response string, state *models.ConversationState) {
	if err := e.states.Delete(from); err != nil {
		log.Printf("engine: failed to clear conversation state for %s: %v", from, err)
	}

	pending := state.PendingContact
	if pending == nil {
		e.notifier.Send(from, "Session expired. Please send your message again.")
		return
	}

	switch strings.ToUpper(strings.TrimSpace(response)) {
	case "YES", "Y":
		existing, err := e.contacts.GetByID(state.RelatedRecordID)
		if err != nil {
			log.Printf("engine: failed to load contact %s: %v", state.RelatedRecordID, err)
			return
		}
		if existing == nil {
			// The record the question referred to is gone; nothing to merge
			return
		}

		existing.Description = models.AppendDescription(existing.Description, pending.Description)
		existing.Tags = models.MergeTags(existing.Tags, pending.SuggestedTags)
		if err := e.contacts.Save(existing); err != nil {
			log.Printf("engine: failed to update contact %q: %v", existing.Name, err)
			e.notifier.Send(from, "Error updating contact. Please try again.")
			return
		}

		e.notifier.Send(from, fmt.Sprintf("Updated %s with new info.", pending.Name))

	case "NO", "N":
		contact := &models.Contact{
			ID:             uuid.New().String(),
			Name:           pending.Name,
			NameNormalized: models.NormalizeName(pending.Name),
			Description:    pending.Description,
			Tags:           pending.SuggestedTags,
			SourcePhone:    from,
		}
		if err := e.contacts.Save(contact); err != nil {
			log.Printf("engine: failed to create contact %q: %v", pending.Name, err)
			e.notifier.Send(from, "Error creating contact. Please try again.")
			return
		}

		e.notifier.Send(from, fmt.Sprintf("Created new entry for %s.", pending.Name))

	default:
		e.notifier.Send(from, "Please reply YES or NO. Or send a new message to start over.")

		state.ExpiresAt = e.now().Add(e.ttl)
		if err := e.states.Upsert(state); err != nil {
			log.Printf("engine: failed to re-arm conversation state for %s: %v", from, err)
		}
	}
}
