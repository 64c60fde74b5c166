package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
	"github.com/blackwell-systems/vitalwatch/internal/health"
	"github.com/blackwell-systems/vitalwatch/internal/kb"
	"github.com/blackwell-systems/vitalwatch/internal/retrieval"
)

// AskHealthResult is the grounded context for a health question. The caller
// (an LLM host) does the prose; we hand it evidence only.
type AskHealthResult struct {
	Grounded      bool     `json:"grounded"`
	Context       string   `json:"context"`
	Sources       []string `json:"sources"`
	EvidenceCount int      `json:"evidence_count"`
}

// CurrentMetricsResult holds the latest-day metric summaries.
type CurrentMetricsResult struct {
	Metrics []CurrentMetricEntry `json:"metrics"`
}

// CurrentMetricEntry is a single current-metric line.
type CurrentMetricEntry struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
}

// ForecastResult holds the displayable predictions plus a count of those
// withheld for low confidence.
type ForecastResult struct {
	Predictions []forecast.Prediction `json:"predictions"`
	Withheld    int                   `json:"withheld"`
}

// SleepDebtResult holds the sleep-debt tracking facts.
type SleepDebtResult struct {
	Facts []string `json:"facts"`
}

var (
	noArgsSchema   = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	questionSchema = json.RawMessage(`{"type":"object","properties":{"question":{"type":"string","description":"Natural-language question about the user's health data"}},"required":["question"],"additionalProperties":false}`)
)

// addTools registers all MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "ask_health",
		Description: "Retrieve grounded evidence from the user's WHOOP data for a natural-language question. Returns context to answer from, never a generated answer.",
		InputSchema: questionSchema,
		Handler:     s.handleAskHealth,
	})
	s.registerTool(toolDef{
		Name:        "get_current_metrics",
		Description: "Latest-day biometric summary: recovery, strain, HRV, resting heart rate, sleep.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetCurrentMetrics,
	})
	s.registerTool(toolDef{
		Name:        "get_forecast",
		Description: "Statistical projections for recovery, sleep debt, performance readiness, and injury risk.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetForecast,
	})
	s.registerTool(toolDef{
		Name:        "get_sleep_debt",
		Description: "Sleep debt over the last week: per-day readings, total, average, and trajectory.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetSleepDebt,
	})
	s.registerTool(toolDef{
		Name:        "get_goals",
		Description: "All tracked health goals with progress, trend, and recommendations.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetGoals,
	})
}

// loadRows reads the export directory into the metric table.
func (s *Server) loadRows() ([]health.MetricRow, error) {
	rows, err := health.LoadDir(s.exportDir)
	if err != nil {
		return nil, fmt.Errorf("loading export dir: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("no health data found in export directory")
	}
	return rows, nil
}

// handleAskHealth retrieves grounding context for a question.
func (s *Server) handleAskHealth(args json.RawMessage) (any, error) {
	var params struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.Question == "" {
		return nil, errors.New("question is required")
	}

	rows, err := s.loadRows()
	if err != nil {
		return nil, err
	}

	facts := kb.Build(rows, health.CurrentMetrics(rows))
	summary := retrieval.Summarize(params.Question, facts)

	return AskHealthResult{
		Grounded:      len(summary.Evidence) > 0,
		Context:       summary.Text,
		Sources:       summary.Sources,
		EvidenceCount: len(summary.Evidence),
	}, nil
}

// handleGetCurrentMetrics returns the latest-day summaries.
func (s *Server) handleGetCurrentMetrics(args json.RawMessage) (any, error) {
	rows, err := s.loadRows()
	if err != nil {
		return nil, err
	}

	current := health.CurrentMetrics(rows)
	entries := make([]CurrentMetricEntry, 0, len(current))
	for _, m := range current {
		entries = append(entries, CurrentMetricEntry{
			Title:    m.Title,
			Value:    m.Value,
			Subtitle: m.Subtitle,
		})
	}
	return CurrentMetricsResult{Metrics: entries}, nil
}

// handleGetForecast returns displayable predictions and the withheld count.
func (s *Server) handleGetForecast(args json.RawMessage) (any, error) {
	rows, err := s.loadRows()
	if err != nil {
		return nil, err
	}

	all := forecast.All(forecast.SeriesFromRows(rows))
	var shown []forecast.Prediction
	withheld := 0
	for _, p := range all {
		if p.Displayable() {
			shown = append(shown, p)
		} else {
			withheld++
		}
	}
	return ForecastResult{Predictions: shown, Withheld: withheld}, nil
}

// handleGetSleepDebt returns the debt-tracking facts from the knowledge base.
func (s *Server) handleGetSleepDebt(args json.RawMessage) (any, error) {
	rows, err := s.loadRows()
	if err != nil {
		return nil, err
	}

	var facts []string
	for _, f := range kb.Build(rows, nil) {
		if f.Source == kb.SourceSleepDebtTracking || f.Source == kb.SourceSleepDebtAnalysis {
			facts = append(facts, f.Content)
		}
	}
	if len(facts) == 0 {
		return nil, errors.New("no sleep debt data found")
	}
	return SleepDebtResult{Facts: facts}, nil
}

// handleGetGoals returns all stored goals.
func (s *Server) handleGetGoals(args json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errors.New("goal store is not available")
	}
	goals, err := s.db.LoadGoals()
	if err != nil {
		return nil, err
	}
	return map[string]any{"goals": goals}, nil
}
