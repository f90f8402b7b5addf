// ABOUTME: Telnyx SMS client for outbound confirmation messages
// ABOUTME: Send reports success as a boolean; failures are logged, never retried
package sms

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

const messagesURL = "https://api.telnyx.com/v2/messages"

// Notifier sends a text message back to a phone number
type Notifier interface {
	Send(to, message string) bool
}

// LogNotifier writes outbound messages to the log instead of sending SMS.
// Used when no Telnyx credentials are configured.
type LogNotifier struct{}

func (LogNotifier) Send(to, message string) bool {
	log.Printf("sms (not sent, no Telnyx credentials) to %s: %s", to, message)
	return true
}

// TelnyxClient sends SMS messages through the Telnyx v2 API
type TelnyxClient struct {
	apiKey     string
	fromNumber string
	httpClient *http.Client
	baseURL    string
}

// NewTelnyxClient creates a Telnyx SMS client
func NewTelnyxClient(apiKey, fromNumber string) *TelnyxClient {
	return &TelnyxClient{
		apiKey:     apiKey,
		fromNumber: fromNumber,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    messagesURL,
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// Send delivers a message and reports whether it was accepted. A failed
// send never blocks record persistence, so errors are logged and absorbed.
func (c *TelnyxClient) Send(to, message string) bool {
	body, err := json.Marshal(sendRequest{
		From: c.fromNumber,
		To:   to,
		Text: message,
	})
	if err != nil {
		log.Printf("telnyx: failed to encode message: %v", err)
		return false
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("telnyx: failed to build request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("telnyx: failed to send SMS: %v", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("telnyx: SMS send returned %d: %s", resp.StatusCode, detail)
		return false
	}

	return true
}
