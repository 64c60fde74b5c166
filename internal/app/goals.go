package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/goal"
	"github.com/blackwell-systems/vitalwatch/internal/health"
	"github.com/blackwell-systems/vitalwatch/internal/output"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Track and suggest health goals",
	Long: `Manage health goals: list tracked goals with progress, add new ones,
generate suggestions from your recent data, refresh progress after new
exports land, and remove completed or abandoned goals.`,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked goals with progress and trend",
	RunE:  runGoalsList,
}

var (
	goalAddKind      string
	goalAddTitle     string
	goalAddTarget    float64
	goalAddBaseline  float64
	goalAddUnit      string
	goalAddDirection string
)

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new goal",
	Long: `Add a goal. The current value is read from the latest export data
when the kind maps to a tracked metric.

Examples:
  vitalwatch goals add --kind recovery --title "Raise recovery" --target 75
  vitalwatch goals add --kind sleep --title "Pay down debt" --target 30 --unit min --direction lower_is_better`,
	RunE: runGoalsAdd,
}

var goalsSuggestAccept int

var goalsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest goals from your recent data",
	Long: `Run the suggestion rules over your last weeks of data and print
ranked goal proposals. Pass --accept N to save proposal N as a goal.`,
	RunE: runGoalsSuggest,
}

var goalsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh goal progress from the latest export data",
	RunE:  runGoalsUpdate,
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "remove <goal-id>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRemove,
}

func init() {
	goalsAddCmd.Flags().StringVar(&goalAddKind, "kind", "custom", "Goal kind: recovery, sleep, strain, hrv, custom")
	goalsAddCmd.Flags().StringVar(&goalAddTitle, "title", "", "Goal title (required)")
	goalsAddCmd.Flags().Float64Var(&goalAddTarget, "target", 0, "Target value (required)")
	goalsAddCmd.Flags().Float64Var(&goalAddBaseline, "baseline", 0, "Baseline value (default: current value)")
	goalsAddCmd.Flags().StringVar(&goalAddUnit, "unit", "", "Unit label, e.g. %, min, ms")
	goalsAddCmd.Flags().StringVar(&goalAddDirection, "direction", string(goal.HigherIsBetter), "higher_is_better or lower_is_better")
	goalsSuggestCmd.Flags().IntVar(&goalsSuggestAccept, "accept", 0, "Save suggestion N as a goal (1-based)")

	goalsCmd.AddCommand(goalsListCmd, goalsAddCmd, goalsSuggestCmd, goalsUpdateCmd, goalsRemoveCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := db.LoadGoals()
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(goals)
	}

	if len(goals) == 0 {
		fmt.Println("No goals tracked. Add one with 'vitalwatch goals add' or run 'vitalwatch goals suggest'.")
		return nil
	}

	fmt.Println(output.Section("Goals"))
	fmt.Println()
	for _, g := range goals {
		fmt.Printf(" %s %s\n",
			output.StyleBold.Render(g.Title),
			output.StyleMuted.Render(fmt.Sprintf("(%s, %s)", g.Kind, shortID(g.ID))))
		fmt.Printf("   %s  %s\n",
			output.ProgressBar(g.Progress, 20),
			trendLabel(g.Trend))
		fmt.Printf("   %s\n",
			output.StyleMuted.Render(fmt.Sprintf("current %.1f%s, target %.1f%s",
				g.CurrentValue, g.Unit, g.TargetValue, g.Unit)))
		for _, r := range goal.Recommendations(g) {
			fmt.Printf("   - %s\n", r)
		}
		fmt.Println()
	}
	return nil
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	if goalAddTitle == "" {
		return fmt.Errorf("--title is required")
	}
	if !cmd.Flags().Changed("target") {
		return fmt.Errorf("--target is required")
	}

	kind := goal.Kind(goalAddKind)
	direction := goal.Direction(goalAddDirection)
	if direction != goal.HigherIsBetter && direction != goal.LowerIsBetter {
		return fmt.Errorf("invalid direction %q", goalAddDirection)
	}

	data, err := loadData()
	if err != nil {
		return err
	}

	current, hasCurrent := currentValueFor(kind, goalAddUnit, data.rows)
	baseline := goalAddBaseline
	if baseline == 0 && hasCurrent {
		baseline = current
	}

	now := time.Now()
	g := goal.Goal{
		ID:            uuid.NewString(),
		Kind:          kind,
		Title:         goalAddTitle,
		BaselineValue: baseline,
		TargetValue:   goalAddTarget,
		Unit:          goalAddUnit,
		Direction:     direction,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if hasCurrent {
		g = goal.UpdateProgress(g, current, now)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveGoal(g); err != nil {
		return err
	}

	fmt.Printf("Added goal %s (%s)\n", output.StyleBold.Render(g.Title), shortID(g.ID))
	if hasCurrent {
		fmt.Printf("  %s\n", output.ProgressBar(g.Progress, 20))
	}
	return nil
}

func runGoalsSuggest(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	suggestions := goal.NewEngine().Run(goal.NewContext(data.rows))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Println("Nothing to suggest: your recent data looks balanced.")
		return nil
	}

	if goalsSuggestAccept > 0 {
		if goalsSuggestAccept > len(suggestions) {
			return fmt.Errorf("only %d suggestion(s) available", len(suggestions))
		}
		return acceptSuggestion(suggestions[goalsSuggestAccept-1], data)
	}

	fmt.Println(output.Section("Goal Suggestions"))
	fmt.Println()
	for i, s := range suggestions {
		fmt.Printf(" %d. %s %s\n", i+1,
			output.StyleBold.Render(s.Title),
			output.StyleMuted.Render(fmt.Sprintf("(impact %.1f)", s.ImpactScore)))
		fmt.Printf("    %s\n", s.Description)
		fmt.Printf("    %s\n\n", output.StyleMuted.Render(
			fmt.Sprintf("%.1f%s -> %.1f%s", s.Baseline, s.Unit, s.Target, s.Unit)))
	}
	fmt.Println(output.StyleMuted.Render(" Accept one with 'vitalwatch goals suggest --accept N'"))
	return nil
}

// acceptSuggestion converts a suggestion into a stored goal.
func acceptSuggestion(s goal.Suggestion, data *sessionData) error {
	now := time.Now()
	g := goal.Goal{
		ID:            uuid.NewString(),
		Kind:          s.Kind,
		Title:         s.Title,
		BaselineValue: s.Baseline,
		TargetValue:   s.Target,
		Unit:          s.Unit,
		Direction:     s.Direction,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if current, ok := currentValueFor(s.Kind, s.Unit, data.rows); ok {
		g = goal.UpdateProgress(g, current, now)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveGoal(g); err != nil {
		return err
	}
	fmt.Printf("Added goal %s (%s)\n", output.StyleBold.Render(g.Title), shortID(g.ID))
	return nil
}

func runGoalsUpdate(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := db.LoadGoals()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No goals to update.")
		return nil
	}

	now := time.Now()
	updated := 0
	for _, g := range goals {
		current, ok := currentValueFor(g.Kind, g.Unit, data.rows)
		if !ok {
			if flagVerbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: no data for kind %s\n", g.Title, g.Kind)
			}
			continue
		}

		next := goal.UpdateProgress(g, current, now)
		if err := db.SaveGoal(next); err != nil {
			return err
		}
		updated++

		fmt.Printf(" %s %s %s\n",
			output.StyleBold.Render(g.Title),
			output.ProgressBar(next.Progress, 20),
			trendLabel(next.Trend))
	}

	fmt.Printf("\n %s\n", output.StyleMuted.Render(fmt.Sprintf("%d of %d goals updated", updated, len(goals))))
	return nil
}

func runGoalsRemove(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := db.LoadGoals()
	if err != nil {
		return err
	}

	// Accept a full ID or an unambiguous prefix.
	var match *goal.Goal
	for i := range goals {
		if goals[i].ID == args[0] || strings.HasPrefix(goals[i].ID, args[0]) {
			if match != nil {
				return fmt.Errorf("id prefix %q is ambiguous", args[0])
			}
			match = &goals[i]
		}
	}
	if match == nil {
		return fmt.Errorf("no goal matching %q", args[0])
	}

	if err := db.DeleteGoal(match.ID); err != nil {
		return err
	}
	fmt.Printf("Removed goal %s\n", output.StyleBold.Render(match.Title))
	return nil
}

// currentValueFor reads the latest value for a goal kind from the metric
// table. The unit disambiguates sleep goals: "min" tracks debt, anything
// else tracks sleep performance.
func currentValueFor(kind goal.Kind, unit string, rows []health.MetricRow) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	latest := rows[0]
	switch kind {
	case goal.KindRecovery:
		return latest.Number(health.FieldRecovery)
	case goal.KindStrain:
		return latest.Number(health.FieldStrain)
	case goal.KindHRV:
		return latest.Number(health.FieldHRV)
	case goal.KindSleep:
		if unit == "min" {
			return latest.Number(health.FieldSleepDebt)
		}
		return latest.Number(health.FieldSleepPerformance)
	}
	return 0, false
}

// trendLabel renders a goal trend with direction-appropriate styling.
func trendLabel(t goal.Trend) string {
	switch t {
	case goal.TrendImproving:
		return output.StyleSuccess.Render(string(t))
	case goal.TrendDeclining:
		return output.StyleError.Render(string(t))
	}
	return output.StyleMuted.Render(string(t))
}

// shortID truncates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
