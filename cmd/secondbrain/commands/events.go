// ABOUTME: CLI command to list and delete captured calendar events
// ABOUTME: Deletion removes the Google copy too when the event was synced
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/secondbrain/internal/config"
	"github.com/harper/secondbrain/internal/storage/sqlite"
)

var (
	eventsLimit  int
	eventsDelete string
)

// NewEventsCmd creates the events command
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List or delete captured calendar events",
		Long: `List calendar events, soonest first.

Events marked local-only were captured while Google Calendar was not
connected; their description keeps the date and time as written.

Examples:
  secondbrain events
  secondbrain events --format json
  secondbrain events --delete 3f1c...`,
		RunE: runEvents,
	}

	cmd.Flags().IntVar(&eventsLimit, "limit", 20, "Maximum number of events to show")
	cmd.Flags().StringVar(&eventsDelete, "delete", "", "Delete the event with this ID")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewEventStore(db)

	if eventsDelete != "" {
		return deleteEvent(cmd, cfg, db, store, eventsDelete)
	}

	if err := validatePositiveInt(eventsLimit, "limit"); err != nil {
		return err
	}

	events, err := store.List(eventsLimit)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	if len(events) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No events found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DATE\tTIME\tTITLE\tPEOPLE\tSYNCED\tID\n")
	fmt.Fprintf(w, "----\t----\t-----\t------\t------\t--\n")
	for _, event := range events {
		synced := "yes"
		if !event.Synced {
			synced = "local only"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			event.EventDate,
			event.EventTime,
			truncate(event.Title, 30),
			strings.Join(event.People, ","),
			synced,
			truncate(event.ID, 8))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d event(s)\n", len(events))
	}
	return nil
}

// deleteEvent removes an event locally and, when it was synced, from the
// connected Google Calendar as well
func deleteEvent(cmd *cobra.Command, cfg *config.Config, db *sqlite.DB, store *sqlite.EventStore, id string) error {
	event, err := store.GetByID(id)
	if err != nil {
		return fmt.Errorf("loading event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("no event with ID %s", id)
	}

	if event.Synced && event.GoogleEventID != "" {
		cal := calendarClient(cfg, db)
		if cal == nil {
			fmt.Fprintf(os.Stderr, "Warning: Google credentials not configured; deleting local copy only\n")
		} else if err := cal.DeleteEvent(context.Background(), event.GoogleEventID); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not delete Google copy: %v\n", err)
		}
	}

	if err := store.Delete(id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %q (%s %s)\n", event.Title, event.EventDate, event.EventTime)
	}
	return nil
}
