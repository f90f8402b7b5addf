// ABOUTME: Per-item reconciliation of classified items against stored records
// ABOUTME: Items are processed sequentially so later items see earlier writes
package core

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/harper/secondbrain/internal/calendar"
	"github.com/harper/secondbrain/internal/models"
)

// itemResult records what happened to one classified item
type itemResult struct {
	kind      models.ItemKind
	title     string
	category  models.NoteCategory
	name      string
	date      string
	timeOfDay string
	synced    bool
	pending   bool
	failed    bool
}

// processItems reconciles classified items in list order. A failed item is
// recorded and skipped; it never aborts the rest of the message.
func (e *Engine) processItems(ctx context.Context, from, message string, items []models.ClassifiedItem) []itemResult {
	results := make([]itemResult, 0, len(items))

	for _, item := range items {
		switch {
		case item.Kind == models.KindNote && item.Note != nil:
			results = append(results, e.processNote(from, item))
		case item.Kind == models.KindContact && item.Contact != nil:
			results = append(results, e.processContact(from, item, len(items) > 1))
		case item.Kind == models.KindCalendar && item.Calendar != nil:
			results = append(results, e.processCalendar(ctx, from, message, item.Calendar))
		default:
			log.Printf("engine: skipping malformed classified item kind %q", item.Kind)
		}
	}

	return results
}

func (e *Engine) processNote(from string, item models.ClassifiedItem) itemResult {
	title := item.Note.ExtractedTitle
	if title == "" {
		title = truncateRunes(item.SourceText, 30)
	}

	note := &models.Note{
		ID:               uuid.New().String(),
		Content:          item.SourceText,
		Category:         item.Note.Category,
		ExtractedTitle:   item.Note.ExtractedTitle,
		ExtractedContext: item.Note.ExtractedContext,
		SourcePhone:      from,
	}

	if err := e.notes.Save(note); err != nil {
		log.Printf("engine: failed to save note: %v", err)
		return itemResult{kind: models.KindNote, failed: true}
	}

	return itemResult{kind: models.KindNote, title: title, category: item.Note.Category}
}

// processContact applies name-based duplicate detection. When the message
// carried multiple items a duplicate merges immediately; a solo duplicate
// parks the contact and asks the sender instead.
func (e *Engine) processContact(from string, item models.ClassifiedItem, multiItem bool) itemResult {
	data := item.Contact
	normalized := models.NormalizeName(data.Name)

	existing, err := e.contacts.GetByNormalizedName(normalized)
	if err != nil {
		log.Printf("engine: duplicate lookup failed for %q: %v", data.Name, err)
		return itemResult{kind: models.KindContact, name: data.Name, failed: true}
	}

	if existing == nil {
		contact := &models.Contact{
			ID:             uuid.New().String(),
			Name:           data.Name,
			NameNormalized: normalized,
			Description:    data.Description,
			Tags:           data.SuggestedTags,
			SourcePhone:    from,
		}
		if err := e.contacts.Save(contact); err != nil {
			log.Printf("engine: failed to save contact: %v", err)
			return itemResult{kind: models.KindContact, name: data.Name, failed: true}
		}
		return itemResult{kind: models.KindContact, name: data.Name}
	}

	if multiItem {
		// Auto-merge to avoid stacking multi-turn questions from one message
		existing.Description = models.AppendDescription(existing.Description, data.Description)
		existing.Tags = models.MergeTags(existing.Tags, data.SuggestedTags)
		if err := e.contacts.Save(existing); err != nil {
			log.Printf("engine: failed to merge contact %q: %v", existing.Name, err)
			return itemResult{kind: models.KindContact, name: data.Name, failed: true}
		}
		return itemResult{kind: models.KindContact, name: data.Name}
	}

	// Solo duplicate: park the contact and ask before touching any record
	if err := e.states.Upsert(&models.ConversationState{
		PhoneNumber:   from,
		State:         models.StateAwaitingDuplicateResponse,
		PendingAction: models.ActionCreateContact,
		PendingContact: &models.PendingContact{
			Name:          data.Name,
			Description:   data.Description,
			SuggestedTags: data.SuggestedTags,
		},
		RelatedRecordID: existing.ID,
		ExpiresAt:       e.now().Add(e.ttl),
	}); err != nil {
		log.Printf("engine: failed to park duplicate contact: %v", err)
		return itemResult{kind: models.KindContact, name: data.Name, failed: true}
	}

	e.notifier.Send(from, duplicateQuestion(existing))

	return itemResult{kind: models.KindContact, name: data.Name, pending: true}
}

// processCalendar creates a Google Calendar event when an account is
// connected, and falls back to a local-only record otherwise. Local records
// keep the literal date/time expressions so nothing the sender wrote is lost.
func (e *Engine) processCalendar(ctx context.Context, from, message string, data *models.CalendarData) itemResult {
	event := &models.CalendarEvent{
		ID:              uuid.New().String(),
		Title:           data.Title,
		Description:     data.Description,
		People:          data.People,
		HasGoogleMeet:   data.AddGoogleMeet,
		OriginalMessage: message,
		SourcePhone:     from,
	}

	if e.calendar != nil && e.calendar.IsConnected(ctx).Connected {
		start, end := e.resolver.Resolve(data.DateExpression, data.TimeExpression, data.DurationMinutes)

		created, err := e.calendar.CreateEvent(ctx, calendar.EventInput{
			Title:         data.Title,
			Start:         start,
			End:           end,
			People:        data.People,
			AddGoogleMeet: data.AddGoogleMeet,
			Description:   data.Description,
		})
		if err == nil {
			event.GoogleEventID = created.GoogleEventID
			event.EventDate = created.Date
			event.EventTime = created.Time
			event.EndTime = created.EndTime
			event.GoogleMeetLink = created.MeetLink
			event.Synced = true

			if err := e.events.Save(event); err != nil {
				log.Printf("engine: failed to save synced event: %v", err)
				return itemResult{kind: models.KindCalendar, title: data.Title, failed: true}
			}
			return itemResult{
				kind:      models.KindCalendar,
				title:     data.Title,
				date:      event.EventDate,
				timeOfDay: event.EventTime,
				synced:    true,
			}
		}
		log.Printf("engine: calendar sync failed, saving locally: %v", err)
	}

	// Local-only: placeholder slot, original expressions preserved
	refNow := e.now().In(e.loc)
	event.EventDate = refNow.Format("2006-01-02")
	event.EventTime = "09:00"
	event.Synced = false

	when := "When: " + data.DateExpression + " " + data.TimeExpression
	if event.Description == "" {
		event.Description = when
	} else {
		event.Description = event.Description + "\n" + when
	}

	if err := e.events.Save(event); err != nil {
		log.Printf("engine: failed to save local event: %v", err)
		return itemResult{kind: models.KindCalendar, title: data.Title, failed: true}
	}

	return itemResult{
		kind:      models.KindCalendar,
		title:     data.Title,
		date:      event.EventDate,
		timeOfDay: event.EventTime,
	}
}
