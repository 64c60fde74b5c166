package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/health"
	"github.com/blackwell-systems/vitalwatch/internal/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the latest metrics dashboard",
	Long: `Display the most recent day's biometrics: recovery, strain, HRV,
resting heart rate, sleep performance, and sleep debt, each with context
against your 7-day baseline.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	current := health.CurrentMetrics(data.rows)
	if len(current) == 0 {
		return fmt.Errorf("latest row has no recognizable metrics")
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(current)
	}

	latest := data.rows[0]
	title := "Today"
	if d := latest.Text(health.FieldDate); d != "" {
		title = fmt.Sprintf("Latest (%s)", d)
	}

	fmt.Println(output.Section(title))
	fmt.Println()

	for _, m := range current {
		value := output.StyleValue.Render(m.Value)
		if m.Title == "Recovery" {
			if n, ok := latest.Number(health.FieldRecovery); ok {
				value = output.ZoneStyle(health.RecoveryZoneName(n)).Bold(true).Width(12).Render(m.Value)
			}
		}
		fmt.Printf(" %s%s %s\n",
			output.StyleLabel.Render(m.Title),
			value,
			output.StyleMuted.Render(m.Subtitle))
	}

	fmt.Printf("\n %s\n", output.StyleMuted.Render(fmt.Sprintf("%d days of data loaded", len(data.rows))))
	return nil
}
