// ABOUTME: MCP tool definitions and registration for the secondbrain server
// ABOUTME: Exposes capture and lookup tools over the MCP protocol
package mcp

import (
	"github.com/harper/secondbrain/internal/core"
	"github.com/harper/secondbrain/internal/sms"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// EngineFactory builds an intake engine that replies through the given
// notifier. MCP captures collect replies in-process instead of sending SMS.
type EngineFactory func(notifier sms.Notifier) *core.Engine

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engineFor EngineFactory, notes *sqlite.NoteStore, contacts *sqlite.ContactStore, events *sqlite.EventStore) *Handlers {
	handlers := &Handlers{
		engineFor: engineFor,
		notes:     notes,
		contacts:  contacts,
		events:    events,
	}

	// 1. capture_message - Run a message through the intake flow
	server.AddTool(mcp.Tool{
		Name:        "capture_message",
		Description: "Capture a free-form message as notes, contacts, and calendar events, exactly as if it arrived by SMS. Returns the confirmation replies.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "Message text to capture",
				},
				"phone": map[string]interface{}{
					"type":        "string",
					"description": "Sender identity for conversation state (default: mcp)",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.CaptureMessage)

	// 2. search_notes - Full-text search over captured notes
	server.AddTool(mcp.Tool{
		Name:        "search_notes",
		Description: "Search captured notes by content, title, or context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchNotes)

	// 3. list_contacts - List rolodex entries
	server.AddTool(mcp.Tool{
		Name:        "list_contacts",
		Description: "List captured contacts, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of contacts to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.ListContacts)

	// 4. list_events - List captured calendar events
	server.AddTool(mcp.Tool{
		Name:        "list_events",
		Description: "List captured calendar events, including local-only events that never reached Google Calendar.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of events to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.ListEvents)

	return handlers
}
