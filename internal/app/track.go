package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
	"github.com/blackwell-systems/vitalwatch/internal/output"
	"github.com/blackwell-systems/vitalwatch/internal/store"
)

var (
	trackCompare bool
	trackHistory bool
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record forecasts and compare them over time",
	Long: `Record the current forecast as a snapshot in the local database.
With --compare, diff the two most recent snapshots to see how each
prediction moved between runs. With --history, list the stored snapshots
instead of recording a new one.

Examples:
  vitalwatch track            # record a snapshot
  vitalwatch track --compare  # record, then diff against the previous run
  vitalwatch track --history  # list stored snapshots`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().BoolVar(&trackCompare, "compare", false, "Diff the two most recent snapshots after recording")
	trackCmd.Flags().BoolVar(&trackHistory, "history", false, "List stored snapshots without recording a new one")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if trackHistory {
		return showTrackHistory(db, data.cfg.Forecast.HistoryLimit)
	}

	all := forecast.All(forecast.SeriesFromRows(data.rows))
	id, err := db.SaveForecast(time.Now(), len(data.rows), all)
	if err != nil {
		return fmt.Errorf("saving forecast: %w", err)
	}

	if !flagJSON {
		fmt.Printf("Recorded forecast snapshot #%d (%d days of data)\n", id, len(data.rows))
	}

	if !trackCompare {
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"snapshot_id": id, "row_count": len(data.rows)})
		}
		return nil
	}

	snapshots, err := db.RecentForecasts(2)
	if err != nil {
		return err
	}
	if len(snapshots) < 2 {
		fmt.Println(output.StyleMuted.Render("Nothing to compare yet: this is the first snapshot."))
		return nil
	}
	return compareSnapshots(snapshots[1], snapshots[0])
}

// showTrackHistory lists stored snapshots, newest first.
func showTrackHistory(db *store.DB, limit int) error {
	snapshots, err := db.RecentForecasts(limit)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshots)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots recorded. Run 'vitalwatch track' after loading data.")
		return nil
	}

	fmt.Println(output.Section("Forecast History"))
	fmt.Println()

	t := output.NewTable("When", "Days", "Recovery", "Sleep Debt", "Readiness", "Injury Risk")
	for _, s := range snapshots {
		byKind := predictionsByKind(s.Predictions)
		t.AddRow(
			s.TakenAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", s.RowCount),
			historyCell(byKind[forecast.KindRecovery]),
			historyCell(byKind[forecast.KindSleepDebt]),
			historyCell(byKind[forecast.KindPerformance]),
			historyCell(byKind[forecast.KindInjuryRisk]),
		)
	}
	fmt.Println(t.Render())
	return nil
}

// compareSnapshots prints the per-kind movement from the previous snapshot
// to the current one.
func compareSnapshots(prev, curr store.ForecastSnapshot) error {
	prevByKind := predictionsByKind(prev.Predictions)
	currByKind := predictionsByKind(curr.Predictions)

	type movement struct {
		Kind     forecast.Kind `json:"kind"`
		Previous float64       `json:"previous"`
		Current  float64       `json:"current"`
		Delta    float64       `json:"delta"`
	}
	var moves []movement
	for _, kind := range []forecast.Kind{
		forecast.KindRecovery, forecast.KindSleepDebt,
		forecast.KindPerformance, forecast.KindInjuryRisk,
	} {
		p, hasPrev := prevByKind[kind]
		c, hasCurr := currByKind[kind]
		if !hasPrev || !hasCurr || p.Confidence == 0 || c.Confidence == 0 {
			continue
		}
		moves = append(moves, movement{
			Kind:     kind,
			Previous: p.PredictedValue,
			Current:  c.PredictedValue,
			Delta:    c.PredictedValue - p.PredictedValue,
		})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"previous_taken_at": prev.TakenAt,
			"current_taken_at":  curr.TakenAt,
			"movements":         moves,
		})
	}

	fmt.Println()
	fmt.Println(output.Section(fmt.Sprintf("Since %s", prev.TakenAt.Format("Jan 2 15:04"))))
	fmt.Println()
	if len(moves) == 0 {
		fmt.Println(" No comparable predictions in both snapshots.")
		return nil
	}
	for _, m := range moves {
		fmt.Printf(" %s%s %s\n",
			output.StyleLabel.Render(predictionTitle(m.Kind)),
			output.StyleValue.Render(fmt.Sprintf("%.1f", m.Current)),
			deltaLabel(m.Kind, m.Delta))
	}
	return nil
}

// predictionsByKind indexes a snapshot's predictions for lookup.
func predictionsByKind(preds []forecast.Prediction) map[forecast.Kind]forecast.Prediction {
	byKind := make(map[forecast.Kind]forecast.Prediction, len(preds))
	for _, p := range preds {
		byKind[p.Kind] = p
	}
	return byKind
}

// historyCell formats one prediction for the history table.
func historyCell(p forecast.Prediction) string {
	if p.Kind == "" || p.Confidence == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", p.PredictedValue)
}

// deltaLabel colors a movement by whether it improved the metric. Rising
// sleep debt and injury risk are bad; everything else improves upward.
func deltaLabel(kind forecast.Kind, delta float64) string {
	text := fmt.Sprintf("%+.1f", delta)
	if delta == 0 {
		return output.StyleMuted.Render("unchanged")
	}
	worseUp := kind == forecast.KindSleepDebt || kind == forecast.KindInjuryRisk
	if (delta > 0) != worseUp {
		return output.StyleSuccess.Render(text)
	}
	return output.StyleError.Render(text)
}
