// ABOUTME: Tests for Telnyx webhook parsing
// ABOUTME: Verifies event flattening and both "to" field formats
package sms

import "testing"

func TestParseWebhook(t *testing.T) {
	body := `{
		"data": {
			"event_type": "message.received",
			"occurred_at": "2026-08-30T12:00:00Z",
			"payload": {
				"id": "msg_123",
				"from": {"phone_number": "+15551234567"},
				"to": [{"phone_number": "+15559876543"}],
				"text": "Watch Oppenheimer"
			}
		}
	}`

	msg, err := ParseWebhook([]byte(body))
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}

	if msg.EventType != EventMessageReceived {
		t.Errorf("EventType = %v, want message.received", msg.EventType)
	}
	if msg.From != "+15551234567" {
		t.Errorf("From = %v, want +15551234567", msg.From)
	}
	if msg.To != "+15559876543" {
		t.Errorf("To = %v, want +15559876543", msg.To)
	}
	if msg.Text != "Watch Oppenheimer" {
		t.Errorf("Text = %v, want message text", msg.Text)
	}
}

func TestParseWebhookSingleObjectTo(t *testing.T) {
	body := `{
		"data": {
			"event_type": "message.received",
			"payload": {
				"id": "msg_124",
				"from": {"phone_number": "+15551234567"},
				"to": {"phone_number": "+15559876543"},
				"text": "hi"
			}
		}
	}`

	msg, err := ParseWebhook([]byte(body))
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}
	if msg.To != "+15559876543" {
		t.Errorf("To = %v, want +15559876543", msg.To)
	}
}

func TestParseWebhookRejectsInvalidJSON(t *testing.T) {
	if _, err := ParseWebhook([]byte("not json")); err == nil {
		t.Error("ParseWebhook() should reject invalid JSON")
	}
}

func TestParseWebhookOtherEventType(t *testing.T) {
	body := `{
		"data": {
			"event_type": "message.sent",
			"payload": {"id": "msg_125", "from": {"phone_number": "+1"}, "text": ""}
		}
	}`

	msg, err := ParseWebhook([]byte(body))
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}
	if msg.EventType == EventMessageReceived {
		t.Error("EventType should pass through for non-inbound events")
	}
}
