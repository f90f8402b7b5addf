// ABOUTME: CLI command to list captured contacts
// ABOUTME: Shows the rolodex with appended descriptions and merged tags
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/secondbrain/internal/config"
	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/storage/sqlite"
)

var contactsLimit int

// NewContactsCmd creates the contacts command
func NewContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List captured contacts",
		Long: `List contacts from the rolodex, newest first.

Duplicate names can coexist when you answered NO to a merge question;
each row is its own entry.

Examples:
  secondbrain contacts
  secondbrain contacts --limit 50 --format json`,
		RunE: runContacts,
	}

	cmd.Flags().IntVar(&contactsLimit, "limit", 20, "Maximum number of contacts to show")

	return cmd
}

func runContacts(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(contactsLimit, "limit"); err != nil {
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

	contacts, err := sqlite.NewContactStore(db).List(contactsLimit)
	if err != nil {
		return fmt.Errorf("listing contacts: %w", err)
	}

	if len(contacts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No contacts found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(contacts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tDESCRIPTION\tTAGS\tUPDATED\n")
	fmt.Fprintf(w, "----\t-----------\t----\t-------\n")
	for _, contact := range contacts {
		// Show only the latest appended description line in the table
		desc := latestDescription(contact)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			contact.Name,
			truncate(desc, 40),
			strings.Join(contact.Tags, ","),
			formatTime(contact.UpdatedAt))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d contact(s)\n", len(contacts))
	}
	return nil
}

func latestDescription(contact models.Contact) string {
	parts := strings.Split(contact.Description, models.DescriptionSeparator)
	return strings.TrimSpace(parts[len(parts)-1])
}
