// ABOUTME: Google Calendar event creation and deletion
// ABOUTME: Events are written to the primary calendar in the reference timezone
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventInput describes an event to create on the connected calendar
type EventInput struct {
	Title         string
	Start         time.Time
	End           time.Time
	People        []string
	AddGoogleMeet bool
	Description   string
}

// EventResult is the created event as Google accepted it
type EventResult struct {
	GoogleEventID string
	Date          string // YYYY-MM-DD in the reference timezone
	Time          string // HH:MM
	EndTime       string
	MeetLink      string
	HTMLLink      string
}

// CreateEvent creates an event on the primary calendar. Attendee names from
// an SMS are free text, not addresses, so they go into the description.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*EventResult, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	description := input.Description
	if len(input.People) > 0 {
		withLine := "With: " + strings.Join(input.People, ", ")
		if description == "" {
			description = withLine
		} else {
			description = description + "\n" + withLine
		}
	}

	event := &gcal.Event{
		Summary:     input.Title,
		Description: description,
		Start: &gcal.EventDateTime{
			DateTime: input.Start.In(c.loc).Format("2006-01-02T15:04:05"),
			TimeZone: c.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: input.End.In(c.loc).Format("2006-01-02T15:04:05"),
			TimeZone: c.loc.String(),
		},
	}

	call := srv.Events.Insert("primary", event)
	if input.AddGoogleMeet {
		event.ConferenceData = &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: fmt.Sprintf("meet-%d", c.now().UnixNano()),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	start := input.Start.In(c.loc)
	end := input.End.In(c.loc)

	return &EventResult{
		GoogleEventID: created.Id,
		Date:          start.Format("2006-01-02"),
		Time:          start.Format("15:04"),
		EndTime:       end.Format("15:04"),
		MeetLink:      meetLink(created),
		HTMLLink:      created.HtmlLink,
	}, nil
}

// DeleteEvent removes an event from the primary calendar
func (c *Client) DeleteEvent(ctx context.Context, googleEventID string) error {
	srv, err := c.service(ctx)
	if err != nil {
		return err
	}
	if err := srv.Events.Delete("primary", googleEventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// service builds a calendar service with a valid credential, or errors when
// no Google account is connected
func (c *Client) service(ctx context.Context) (*gcal.Service, error) {
	stored, err := c.tokens.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("google calendar is not connected")
	}

	token, err := c.validToken(ctx, stored)
	if err != nil {
		return nil, err
	}

	srv, err := gcal.NewService(ctx, option.WithTokenSource(c.conf.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return srv, nil
}

// meetLink extracts the video entry point URI from a created event
func meetLink(event *gcal.Event) string {
	if event.ConferenceData == nil {
		return ""
	}
	for _, ep := range event.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" {
			return ep.Uri
		}
	}
	return ""
}
