// ABOUTME: Telnyx webhook payload parsing for inbound messages
// ABOUTME: Flattens the nested event body into a simple inbound message
package sms

import "encoding/json"

// EventMessageReceived is the only event type the intake engine acts on
const EventMessageReceived = "message.received"

// InboundMessage is a flattened Telnyx webhook event
type InboundMessage struct {
	EventType string
	MessageID string
	From      string
	To        string
	Text      string
	Timestamp string
}

// webhookBody mirrors the nested Telnyx webhook JSON
type webhookBody struct {
	Data struct {
		EventType  string `json:"event_type"`
		OccurredAt string `json:"occurred_at"`
		Payload    struct {
			ID   string `json:"id"`
			From struct {
				PhoneNumber string `json:"phone_number"`
			} `json:"from"`
			To   json.RawMessage `json:"to"`
			Text string          `json:"text"`
		} `json:"payload"`
	} `json:"data"`
}

// ParseWebhook decodes a Telnyx webhook body into an InboundMessage
func ParseWebhook(body []byte) (*InboundMessage, error) {
	var wb webhookBody
	if err := json.Unmarshal(body, &wb); err != nil {
		return nil, err
	}

	return &InboundMessage{
		EventType: wb.Data.EventType,
		MessageID: wb.Data.Payload.ID,
		From:      wb.Data.Payload.From.PhoneNumber,
		To:        parseToNumber(wb.Data.Payload.To),
		Text:      wb.Data.Payload.Text,
		Timestamp: wb.Data.OccurredAt,
	}, nil
}

type toEntry struct {
	PhoneNumber string `json:"phone_number"`
}

// parseToNumber accepts both the array and single-object "to" formats
// Telnyx has used over time
func parseToNumber(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []toEntry
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return list[0].PhoneNumber
		}
		return ""
	}

	var single toEntry
	if err := json.Unmarshal(raw, &single); err == nil {
		return single.PhoneNumber
	}

	return ""
}
