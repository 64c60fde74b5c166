// Package app contains the Cobra command tree for vitalwatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "vitalwatch",
	Short: "Personal health analytics for WHOOP export data",
	Long: `vitalwatch reads WHOOP CSV exports and turns them into answers:
current metrics, grounded Q&A over your biometric history, short-horizon
forecasts for recovery and injury risk, and goal tracking.

Run 'vitalwatch summary' to see today's numbers, or 'vitalwatch ask' to
question your data in plain language.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("vitalwatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  summary   Show the latest metrics dashboard")
		fmt.Println("  ask       Ask a question about your health data")
		fmt.Println("  facts     Inspect the knowledge base built from your exports")
		fmt.Println("  forecast  Project recovery, sleep debt, readiness, and injury risk")
		fmt.Println("  goals     Track and suggest health goals")
		fmt.Println("  track     Record forecast snapshots and compare over time")
		fmt.Println("  watch     Monitor the export directory and alert on changes")
		fmt.Println("  mcp       Run an MCP stdio server for use with an LLM host")
		fmt.Println("  doctor    Check whether the vitalwatch setup is healthy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/vitalwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Export directory override (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
