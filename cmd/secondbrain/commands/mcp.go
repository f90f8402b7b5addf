// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to capture and query via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/secondbrain/internal/config"
	"github.com/harper/secondbrain/internal/core"
	"github.com/harper/secondbrain/internal/mcp"
	"github.com/harper/secondbrain/internal/sms"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs secondbrain as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to capture messages and query the store via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  secondbrain mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "secondbrain": {
  #       "command": "secondbrain",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required to classify captured messages")
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	// Each capture call gets its own reply collector, so the engine is
	// built per notifier rather than once
	engineFor := func(notifier sms.Notifier) *core.Engine {
		engine, err := buildEngine(cfg, db, notifier)
		if err != nil {
			// buildEngine only fails on missing config, checked above
			log.Printf("Warning: engine construction failed: %v", err)
			return nil
		}
		return engine
	}

	server := mcpserver.NewMCPServer(
		"Second Brain Capture",
		"0.1.0",
	)

	mcp.RegisterTools(server, engineFor,
		sqlite.NewNoteStore(db),
		sqlite.NewContactStore(db),
		sqlite.NewEventStore(db))

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("secondbrain MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
		if err := db.Close(); err != nil {
			log.Printf("Warning: Error closing database: %v", err)
		}
		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
