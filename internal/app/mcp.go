package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server over your health data",
	Long: `Start a Model Context Protocol stdio server that an LLM host can
query during a conversation. The server exposes five tools:

  ask_health          Retrieve grounded evidence for a health question
  get_current_metrics Latest recovery, strain, HRV, and sleep metrics
  get_forecast        Statistical projections with confidence scores
  get_sleep_debt      Sleep debt status and trend facts
  get_goals           Tracked goals with progress and trend

Add to your MCP host configuration:
  {"mcpServers":{"vitalwatch":{"command":"vitalwatch","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The goal tool degrades gracefully when the database cannot open.
	db, dbErr := openStore()
	if dbErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: goal store unavailable: %v\n", dbErr)
		db = nil
	} else {
		defer db.Close()
	}

	srv := mcp.NewServer(cfg, db)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
