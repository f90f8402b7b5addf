// ABOUTME: CLI command for the Google Calendar connection lifecycle
// ABOUTME: Shows status, prints the consent URL, exchanges codes, disconnects
package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/secondbrain/internal/config"
)

var (
	connectCode       string
	connectDisconnect bool
)

// NewConnectCmd creates the connect command
func NewConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Manage the Google Calendar connection",
		Long: `Show or change the Google Calendar connection.

Without flags, prints the connection status and a consent URL when
disconnected. Paste the code Google hands back with --code to finish.
If the webhook server is running, visiting /oauth/google/connect in a
browser completes the whole flow instead.

Examples:
  secondbrain connect
  secondbrain connect --code 4/0AdF...
  secondbrain connect --disconnect`,
		RunE: runConnect,
	}

	cmd.Flags().StringVar(&connectCode, "code", "", "Authorization code from the Google consent page")
	cmd.Flags().BoolVar(&connectDisconnect, "disconnect", false, "Remove the stored Google credentials")

	return cmd
}

func runConnect(cmd *cobra.Command, args []string) error {
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

	cal := calendarClient(cfg, db)
	if cal == nil {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	ctx := context.Background()

	if connectDisconnect {
		if err := cal.Disconnect(); err != nil {
			return fmt.Errorf("disconnecting: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Google Calendar disconnected")
		return nil
	}

	if connectCode != "" {
		if err := cal.Exchange(ctx, connectCode); err != nil {
			return fmt.Errorf("exchanging code: %w", err)
		}
		status := cal.IsConnected(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Connected to Google Calendar as %s\n", status.Email)
		return nil
	}

	status := cal.IsConnected(ctx)
	if status.Connected {
		fmt.Fprintf(cmd.OutOrStdout(), "Connected to Google Calendar as %s\n", status.Email)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Not connected. Open this URL, grant access, then run:")
	fmt.Fprintln(cmd.OutOrStdout(), "  secondbrain connect --code <code>")
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), cal.AuthURL(uuid.New().String()))
	return nil
}
