// ABOUTME: CLI command to list and search captured notes
// ABOUTME: Supports category filtering and table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/secondbrain/internal/config"
	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/storage/sqlite"
)

var (
	notesCategory string
	notesSearch   string
	notesLimit    int
)

// NewNotesCmd creates the notes command
func NewNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List or search captured notes",
		Long: `List captured notes, newest first.

Examples:
  secondbrain notes
  secondbrain notes --category movie
  secondbrain notes --search oppenheimer
  secondbrain notes --format json`,
		RunE: runNotes,
	}

	cmd.Flags().StringVar(&notesCategory, "category", "", "Filter by category (movie, book, idea, task, plan, recommendation, quote, other)")
	cmd.Flags().StringVar(&notesSearch, "search", "", "Search notes by content, title, or context")
	cmd.Flags().IntVar(&notesLimit, "limit", 20, "Maximum number of notes to show")

	return cmd
}

func runNotes(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(notesLimit, "limit"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewNoteStore(db)

	var notes []models.Note
	switch {
	case notesSearch != "":
		notes, err = store.Search(notesSearch, notesLimit)
	case notesCategory != "":
		category := models.NoteCategory(notesCategory)
		if !models.ValidCategory(category) {
			return fmt.Errorf("unknown category %q", notesCategory)
		}
		notes, err = store.ListByCategory(category, notesLimit)
	default:
		notes, err = store.List(notesLimit)
	}
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	if len(notes) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No notes found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CATEGORY\tCONTENT\tCAPTURED\n")
	fmt.Fprintf(w, "--------\t-------\t--------\n")
	for _, note := range notes {
		content := note.ExtractedTitle
		if content == "" {
			content = note.Content
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", note.Category, truncate(content, 50), formatTime(note.CreatedAt))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d note(s)\n", len(notes))
	}
	return nil
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
