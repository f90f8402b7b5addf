// ABOUTME: MCP tool handler implementations for the secondbrain server
// ABOUTME: Capture runs the real intake engine with an in-process reply collector
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultCapturePhone is the sender identity for captures without one.
// Conversation state (the YES/NO duplicate question) is keyed by it, so
// follow-up captures resolve pending questions like SMS replies do.
const defaultCapturePhone = "mcp"

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engineFor EngineFactory
	notes     *sqlite.NoteStore
	contacts  *sqlite.ContactStore
	events    *sqlite.EventStore
}

// replyCollector records would-be SMS replies for the tool response
type replyCollector struct {
	replies []string
}

func (c *replyCollector) Send(_, message string) bool {
	c.replies = append(c.replies, message)
	return true
}

// CaptureMessage handles the capture_message tool
func (h *Handlers) CaptureMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	phone := request.GetString("phone", defaultCapturePhone)

	collector := &replyCollector{}
	engine := h.engineFor(collector)
	if engine == nil {
		return mcp.NewToolResultError("capture engine is not available"), nil
	}
	engine.HandleInbound(ctx, phone, message)

	response := map[string]interface{}{
		"replies": collector.replies,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchNotes handles the search_notes tool
func (h *Handlers) SearchNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", 10)

	notes, err := h.notes.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("note search failed: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(notes))
	for _, note := range notes {
		results = append(results, map[string]interface{}{
			"id":         note.ID,
			"content":    note.Content,
			"category":   string(note.Category),
			"title":      note.ExtractedTitle,
			"created_at": note.CreatedAt.Format(time.RFC3339),
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"notes": results})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListContacts handles the list_contacts tool
func (h *Handlers) ListContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)

	contacts, err := h.contacts.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list contacts: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(contacts))
	for _, contact := range contacts {
		results = append(results, map[string]interface{}{
			"id":          contact.ID,
			"name":        contact.Name,
			"description": contact.Description,
			"tags":        contact.Tags,
			"updated_at":  contact.UpdatedAt.Format(time.RFC3339),
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"contacts": results})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListEvents handles the list_events tool
func (h *Handlers) ListEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)

	events, err := h.events.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list events: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(events))
	for _, event := range events {
		results = append(results, formatEvent(event))
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"events": results})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

func formatEvent(event models.CalendarEvent) map[string]interface{} {
	out := map[string]interface{}{
		"id":     event.ID,
		"title":  event.Title,
		"date":   event.EventDate,
		"time":   event.EventTime,
		"synced": event.Synced,
	}
	if event.GoogleMeetLink != "" {
		out["meet_link"] = event.GoogleMeetLink
	}
	if len(event.People) > 0 {
		out["people"] = event.People
	}
	return out
}
