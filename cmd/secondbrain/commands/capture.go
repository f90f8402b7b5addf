// ABOUTME: CLI command to capture a message through the intake flow
// ABOUTME: Prints the confirmation replies that would have gone out by SMS
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/secondbrain/internal/config"
)

var capturePhone string

// stdoutNotifier prints would-be SMS replies to the command output
type stdoutNotifier struct {
	out io.Writer
}

func (n *stdoutNotifier) Send(_, message string) bool {
	_, _ = fmt.Fprintln(n.out, message)
	return true
}

// NewCaptureCmd creates the capture command
func NewCaptureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture [message]",
		Short: "Capture a message as notes, contacts, and events",
		Long: `Capture a free-form message exactly as if it arrived by SMS.

The message is classified, each piece is saved where it belongs, and
the confirmation replies are printed. Duplicate-contact questions work
too: answer with "secondbrain capture yes" or "secondbrain capture no".

Examples:
  secondbrain capture "Watch Oppenheimer"
  secondbrain capture "Sarah - met at the gym, does marketing"
  secondbrain capture "Dinner with Sam friday 7pm"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCapture,
	}

	cmd.Flags().StringVar(&capturePhone, "phone", "cli", "Sender identity for conversation state")

	return cmd
}

func runCapture(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	var message string
	if len(args) > 0 {
		message = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		message = string(data)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("no message provided")
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

	engine, err := buildEngine(cfg, db, &stdoutNotifier{out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	engine.HandleInbound(context.Background(), capturePhone, message)
	return nil
}
