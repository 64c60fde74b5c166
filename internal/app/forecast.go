package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
	"github.com/blackwell-systems/vitalwatch/internal/output"
)

var (
	forecastAll  bool
	forecastSave bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project recovery, sleep debt, readiness, and injury risk",
	Long: `Compute short-horizon statistical projections from the export data:

  recovery               tomorrow's recovery score
  sleep_debt             projected weekly sleep debt
  performance_readiness  a 0-100 readiness composite
  injury_risk            a 0-100 overload risk score

Predictions below the confidence threshold are withheld by default; pass
--all to see them anyway. --save records the run so 'track' can compare
forecasts over time.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&forecastAll, "all", false, "Include low-confidence and insufficient-data predictions")
	forecastCmd.Flags().BoolVar(&forecastSave, "save", false, "Record this forecast in the history database")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	all := forecast.All(forecast.SeriesFromRows(data.rows))

	var shown []forecast.Prediction
	withheld := 0
	for _, p := range all {
		if p.Displayable() || forecastAll {
			shown = append(shown, p)
		} else {
			withheld++
		}
	}

	if forecastSave {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := db.SaveForecast(time.Now(), len(data.rows), all); err != nil {
			return fmt.Errorf("saving forecast: %w", err)
		}
		if flagVerbose {
			fmt.Fprintln(cmd.ErrOrStderr(), output.StyleMuted.Render("forecast saved"))
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"predictions": shown,
			"withheld":    withheld,
		})
	}

	fmt.Println(output.Section("Forecast"))
	for _, p := range shown {
		renderPrediction(p)
	}
	if withheld > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render(
			fmt.Sprintf("%d prediction(s) withheld for low confidence (use --all to show)", withheld)))
	}
	return nil
}

// renderPrediction prints one prediction block.
func renderPrediction(p forecast.Prediction) {
	fmt.Printf("\n %s\n", output.StyleHeader.Render(predictionTitle(p.Kind)))

	if p.Confidence == 0 {
		fmt.Printf("   %s\n", output.StyleMuted.Render(p.Reasoning))
		return
	}

	value := formatPredictedValue(p)
	switch p.Kind {
	case forecast.KindInjuryRisk:
		fmt.Printf("   %s  %s\n", output.RiskBar(p.PredictedValue, 20), output.Confidence(p.Confidence))
	case forecast.KindRecovery, forecast.KindPerformance:
		fmt.Printf("   %s  %s\n", output.ProgressBar(p.PredictedValue, 20), output.Confidence(p.Confidence))
	default:
		fmt.Printf("   %s  %s\n", output.StyleBold.Render(value), output.Confidence(p.Confidence))
	}

	fmt.Printf("   %s\n", output.StyleMuted.Render(p.Timeframe))
	fmt.Printf("   %s\n", p.Reasoning)
	for _, r := range p.Recommendations {
		fmt.Printf("   - %s\n", r)
	}
}

func predictionTitle(k forecast.Kind) string {
	switch k {
	case forecast.KindRecovery:
		return "Recovery"
	case forecast.KindSleepDebt:
		return "Sleep Debt"
	case forecast.KindPerformance:
		return "Performance Readiness"
	case forecast.KindInjuryRisk:
		return "Injury Risk"
	}
	return string(k)
}

func formatPredictedValue(p forecast.Prediction) string {
	switch p.Kind {
	case forecast.KindSleepDebt:
		return fmt.Sprintf("%.0f min/week", p.PredictedValue)
	default:
		return fmt.Sprintf("%.0f", p.PredictedValue)
	}
}
