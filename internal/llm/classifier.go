// ABOUTME: OpenAI-backed message classifier for inbound SMS capture
// ABOUTME: Degrades to a fallback note item on any transport or parse failure
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the default model for classification
const DefaultChatModel = "gpt-4o-mini"

const systemPrompt = `You are a message classifier for a personal "Second Brain" system.
Your job is to analyze incoming SMS messages and split them into classified items.

SPLITTING RULES:
- A message may contain several distinct things; return one item per thing.
- Distinct entities of the same category are separate items (two movies named
  in one text are two note items).
- All details about one person stay in a SINGLE contact item.

ITEM TYPES:

1. CONTACT (person):
   - Pattern: "Name - description" or "Name: description" or "Name, description"
   - Must have a clear person name (1-3 words, capitalized) and context about them
   - Examples: "Sarah - macro class", "John: met at conference"

2. CALENDAR (scheduled event):
   - Requires BOTH an explicit date cue AND an explicit clock-time cue
   - "Dinner friday 7pm" is calendar; "Dinner friday" has no clock time and is
     a task note instead
   - Extract the literal date expression and time expression as written
   - Set add_google_meet true only if the message mentions a video call/zoom/meet

3. NOTE (everything else), with category:
   movie, book, idea, task, plan, recommendation, quote, other

IMPORTANT DISTINCTIONS:
- "Watch Oppenheimer" = note (movie)
- "Call mom" = note (task)
- "Sarah - macro class" = contact
- "Lunch with Sam tomorrow at noon" = calendar

RESPONSE FORMAT (JSON only, no markdown, no explanation):
{
  "items": [
    {
      "type": "note" | "contact" | "calendar",
      "confidence": 0.0-1.0,
      "original_text": "the part of the message this item came from",
      "data": {
        // note: "category", "extracted_title", "extracted_context"
        // contact: "name", "description", "suggested_tags"
        // calendar: "title", "date_expression", "time_expression",
        //           "duration_minutes", "people", "add_google_meet", "description"
      }
    }
  ]
}`

// ClassifierConfig holds configuration for the classifier
type ClassifierConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Classifier wraps the OpenAI API client with retry logic
type Classifier struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClassifier creates a classifier with the given configuration
func NewClassifier(cfg *ClassifierConfig) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Classifier{
		client:     openai.NewClient(cfg.APIKey),
		chatModel:  chatModel,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Classify turns a raw message into an ordered list of classified items.
// It never returns an empty list: when the API or its output fails, the
// whole message comes back as a single "other" note item.
func (c *Classifier) Classify(message string) []models.ClassifiedItem {
	items, err := c.classify(message)
	if err != nil {
		log.Printf("classification failed, saving as note: %v", err)
		return []models.ClassifiedItem{models.FallbackNoteItem(message)}
	}
	return items
}

func (c *Classifier) classify(message string) ([]models.ClassifiedItem, error) {
	userPrompt := fmt.Sprintf("Classify this SMS message:\n\n%q", message)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: 0.1,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		items, err := parseResponse(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		return items, nil
	}

	return nil, fmt.Errorf("classification failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// classificationResponse mirrors the expected JSON envelope
type classificationResponse struct {
	Items []models.ClassifiedItem `json:"items"`
}

// parseResponse decodes the model output into classified items
func parseResponse(content string) ([]models.ClassifiedItem, error) {
	content = stripFences(content)

	var resp classificationResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no items in response")
	}
	return resp.Items, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
