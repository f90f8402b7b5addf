// ABOUTME: Contact represents a rolodex entry deduplicated by normalized name
// ABOUTME: Descriptions are append-only, tags carry set semantics
package models

import (
	"strings"
	"time"
)

// DescriptionSeparator joins appended contact descriptions
const DescriptionSeparator = "\n---\n"

// Contact represents a rolodex entry
type Contact struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NameNormalized string    `json:"name_normalized"`
	Description    string    `json:"description,omitempty"`
	Tags           []string  `json:"tags"`
	SourcePhone    string    `json:"source_phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeName returns the dedup key for a contact name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AppendDescription joins an existing description with new text using the
// append-only separator. An empty existing description yields the new text.
func AppendDescription(existing, incoming string) string {
	if existing == "" {
		return incoming
	}
	return existing + DescriptionSeparator + incoming
}

// MergeTags unions two tag lists, preserving first-seen order and dropping
// duplicates.
func MergeTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, tag := range existing {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	for _, tag := range incoming {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	return merged
}
