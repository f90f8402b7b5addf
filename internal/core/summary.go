// ABOUTME: Confirmation SMS formatting for processed items
// ABOUTME: A pending duplicate question suppresses the aggregate reply
package core

import (
	"fmt"
	"strings"

	"github.com/harper/secondbrain/internal/models"
)

// buildConfirmation renders the confirmation reply for a batch of item
// results. The second return is false when no reply should be sent (a
// duplicate question already went out and nothing else was saved).
func buildConfirmation(results []itemResult) (string, bool) {
	if len(results) == 0 {
		return "", false
	}

	var saved []itemResult
	var pending, failed int
	for _, r := range results {
		switch {
		case r.pending:
			pending++
		case r.failed:
			failed++
		default:
			saved = append(saved, r)
		}
	}

	// A question is already on the wire; only mention the items that did save
	if pending > 0 {
		if len(saved) == 0 {
			return "", false
		}
		parts := make([]string, 0, len(saved))
		for _, r := range saved {
			parts = append(parts, shortSummary(r))
		}
		return "Saved: " + strings.Join(parts, ", "), true
	}

	if len(saved) == 0 {
		return "Sorry, there was an error saving your items. Please try again.", true
	}

	if len(saved) == 1 {
		return singleSummary(saved[0]), true
	}

	lines := make([]string, 0, len(saved))
	for _, r := range saved {
		lines = append(lines, shortSummary(r))
	}
	msg := fmt.Sprintf("Saved %d items:\n%s", len(saved), strings.Join(lines, "\n"))
	if failed > 0 {
		msg += fmt.Sprintf("\n(%d failed)", failed)
	}
	return msg, true
}

// singleSummary is the full-width confirmation for a lone saved item
func singleSummary(r itemResult) string {
	switch r.kind {
	case models.KindContact:
		return "Saved contact: " + r.name
	case models.KindCalendar:
		msg := fmt.Sprintf("Saved event: %q on %s at %s", r.title, r.date, r.timeOfDay)
		if !r.synced {
			msg += "\n(Calendar not connected - saved locally)"
		}
		return msg
	default:
		suffix := ""
		if len([]rune(r.title)) >= 30 {
			suffix = "..."
		}
		return fmt.Sprintf("Saved: \"%s%s\" [%s]", r.title, suffix, r.category)
	}
}

// shortSummary is the compact per-item line used in multi-item replies
func shortSummary(r itemResult) string {
	switch r.kind {
	case models.KindContact:
		return r.name + " (contact)"
	case models.KindCalendar:
		return fmt.Sprintf("%q (event)", r.title)
	default:
		title := truncateRunes(r.title, 20)
		suffix := ""
		if len([]rune(title)) >= 20 {
			suffix = "..."
		}
		return fmt.Sprintf("\"%s%s\" [%s]", title, suffix, r.category)
	}
}

// truncateRunes cuts s to at most n runes
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
