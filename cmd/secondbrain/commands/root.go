// ABOUTME: Root command setup and global flags for the secondbrain CLI
// ABOUTME: All subcommands hang off the root created here
package commands

import (
	"github.com/spf13/cobra"
)

var (
	quiet        bool
	verbose      bool
	outputFormat string
	dbPath       string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "secondbrain",
		Short: "Capture notes, contacts, and events from free-form text",
		Long: `secondbrain is a personal capture system.

Text anything at it - things to watch, people you met, dinners to
schedule - and it classifies the message, files each piece where it
belongs, and confirms what it saved. Normally fed by an SMS webhook
(see the server binary); this CLI works the same store directly.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table or json)")
	root.PersistentFlags().StringVar(&dbPath, "db", dbPath, "Database file path (default: XDG data dir)")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(
		NewCaptureCmd(),
		NewNotesCmd(),
		NewContactsCmd(),
		NewEventsCmd(),
		NewConnectCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
