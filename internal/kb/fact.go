// Package kb builds the retrievable knowledge base: atomic natural-language
// facts derived from the metric table and its current-value summaries.
package kb

// Fact sources, in descending priority for retrieval boosts.
const (
	SourceCurrentMetrics    = "current_metrics"
	SourceSleepDebtTracking = "sleep_debt_tracking"
	SourceSleepDebtAnalysis = "sleep_debt_analysis"
	SourceCSV               = "csv_data"
)

// Fact is one atomic, retrievable evidence statement. Facts are immutable
// value objects; the whole set is rebuilt whenever the table changes.
type Fact struct {
	// Content is the rendered sentence handed to retrieval and, through
	// the summarizer, to the generation collaborator. Temporal facts are
	// phrased relatively ("most recently", "in recent days"); exact
	// calendar dates appear only in the no-relative-phrase fallback.
	Content string `json:"content"`

	// Metric is the source field name, e.g. "recovery score %".
	Metric string `json:"metric"`

	// Value is the rendered value with unit formatting applied.
	Value string `json:"value"`

	// Source tags the fact's origin (one of the Source constants).
	Source string `json:"source"`

	// Recency ranks temporal facts: -1 is the current snapshot, 0 the most
	// recent day, increasing with age. Valid only when HasRecency is true.
	Recency    int  `json:"recency"`
	HasRecency bool `json:"has_recency"`
}
