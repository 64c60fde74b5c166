package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/config"
	"github.com/blackwell-systems/vitalwatch/internal/health"
	"github.com/blackwell-systems/vitalwatch/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the vitalwatch setup is healthy",
	Long: `Run a series of checks against your vitalwatch configuration and
export directory. Prints a pass/fail line for each check and a summary
of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var checks []doctorCheck

	// 1. Export directory — exists and is readable.
	checks = append(checks, checkExportDir(cfg.ExportDir))

	// 2. Export data — CSV files parse into metric rows.
	rows, dataCheck := checkExportData(cfg.ExportDir)
	checks = append(checks, dataCheck)

	// 3. Forecast readiness — enough recent days for projections.
	checks = append(checks, checkForecastReadiness(rows))

	// 4. SQLite database — config.DBPath() exists.
	checks = append(checks, checkDatabase())

	// 5. Watch daemon — PID file exists and process is running.
	checks = append(checks, checkWatchDaemon())

	// 6. API key — provider key env var is set.
	checks = append(checks, checkAPIKey(cfg.Assistant.Provider))

	// Count passes.
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	// Render styled output.
	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}

	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkExportDir verifies that the export directory exists and is a directory.
func checkExportDir(exportDir string) doctorCheck {
	info, err := os.Stat(exportDir)
	if err != nil {
		return doctorCheck{
			Name:    "Export directory",
			Passed:  false,
			Message: fmt.Sprintf("not found: %s", exportDir),
		}
	}
	if !info.IsDir() {
		return doctorCheck{
			Name:    "Export directory",
			Passed:  false,
			Message: fmt.Sprintf("path exists but is not a directory: %s", exportDir),
		}
	}
	return doctorCheck{
		Name:    "Export directory",
		Passed:  true,
		Message: exportDir,
	}
}

// checkExportData parses the export CSVs and reports row count and latest
// date. The parsed rows are returned so later checks can reuse them.
func checkExportData(exportDir string) ([]health.MetricRow, doctorCheck) {
	rows, err := health.LoadDir(exportDir)
	if err != nil {
		return nil, doctorCheck{
			Name:    "Export data",
			Passed:  false,
			Message: fmt.Sprintf("error reading exports: %v", err),
		}
	}
	if len(rows) == 0 {
		return nil, doctorCheck{
			Name:    "Export data",
			Passed:  false,
			Message: "no CSV rows found (export your data and try again)",
		}
	}

	msg := fmt.Sprintf("%d days of data", len(rows))
	if d := rows[0].Text(health.FieldDate); d != "" {
		msg += fmt.Sprintf(", latest %s", d)
	}
	return rows, doctorCheck{
		Name:    "Export data",
		Passed:  true,
		Message: msg,
	}
}

// checkForecastReadiness verifies there is enough data for projections.
// Predictors want at least a week of history before they report anything
// with confidence.
func checkForecastReadiness(rows []health.MetricRow) doctorCheck {
	const minDays = 7
	if len(rows) < minDays {
		return doctorCheck{
			Name:    "Forecast readiness",
			Passed:  false,
			Message: fmt.Sprintf("%d days of data (%d needed for projections)", len(rows), minDays),
		}
	}

	// Stale data produces misleading projections.
	if d := rows[0].Text(health.FieldDate); d != "" {
		if latest, err := time.Parse("2006-01-02", d); err == nil {
			if age := time.Since(latest); age > 7*24*time.Hour {
				return doctorCheck{
					Name:    "Forecast readiness",
					Passed:  false,
					Message: fmt.Sprintf("latest data is %d days old (re-export for current projections)", int(age.Hours()/24)),
				}
			}
		}
	}

	return doctorCheck{
		Name:    "Forecast readiness",
		Passed:  true,
		Message: fmt.Sprintf("%d days of data", len(rows)),
	}
}

// checkDatabase verifies that the SQLite database file exists.
func checkDatabase() doctorCheck {
	dbPath := config.DBPath()
	_, err := os.Stat(dbPath)
	if err != nil {
		return doctorCheck{
			Name:    "SQLite database",
			Passed:  false,
			Message: fmt.Sprintf("not found at %s (run 'vitalwatch track' to create)", dbPath),
		}
	}
	return doctorCheck{
		Name:    "SQLite database",
		Passed:  true,
		Message: dbPath,
	}
}

// checkWatchDaemon checks whether the watch daemon PID file exists and the process is running.
func checkWatchDaemon() doctorCheck {
	pidPath := filepath.Join(config.ConfigDir(), "watch.pid")

	data, err := os.ReadFile(pidPath)
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: "not running (no PID file)",
		}
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("invalid PID in file: %q", pidStr),
		}
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("PID %d not found", pid),
		}
	}

	// Signal 0 checks process existence without sending an actual signal.
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("PID %d is not running (stale PID file)", pid),
		}
	}

	return doctorCheck{
		Name:    "Watch daemon",
		Passed:  true,
		Message: fmt.Sprintf("running (PID %d)", pid),
	}
}

// checkAPIKey verifies that the configured provider's key env var is set.
func checkAPIKey(provider string) doctorCheck {
	envVar := "ANTHROPIC_API_KEY"
	if provider == "openai" {
		envVar = "OPENAI_API_KEY"
	}

	val := os.Getenv(envVar)
	if val == "" {
		return doctorCheck{
			Name:    "API key",
			Passed:  false,
			Message: fmt.Sprintf("%s is not set (needed for 'ask')", envVar),
		}
	}
	// Show only the first few characters for security.
	masked := val[:min(8, len(val))] + "..."
	return doctorCheck{
		Name:    "API key",
		Passed:  true,
		Message: fmt.Sprintf("%s set (%s)", envVar, masked),
	}
}

// min returns the smaller of two ints.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
