// Package health parses and models the user's biometric export data.
// It is the data-loading layer: everything downstream (knowledge base,
// retrieval, forecasting, goals) consumes the MetricRow table built here.
package health

// Well-known field names as they appear in the export after key
// normalization (lower-cased, trimmed).
const (
	FieldDate             = "date"
	FieldRecovery         = "recovery score %"
	FieldStrain           = "day strain"
	FieldHRV              = "heart rate variability (ms)"
	FieldRestingHR        = "resting heart rate (bpm)"
	FieldSleepPerformance = "sleep performance %"
	FieldSleepEfficiency  = "sleep efficiency %"
	FieldSleepDuration    = "asleep duration (min)"
	FieldSleepNeed        = "sleep need (min)"
	FieldSleepDebt        = "sleep debt (min)"
	FieldBloodOxygen      = "blood oxygen %"
)

// Kind classifies a metric field so that threshold and formatting logic can
// switch exhaustively instead of re-matching raw field names everywhere.
type Kind string

const (
	KindRecovery         Kind = "recovery"
	KindStrain           Kind = "strain"
	KindHRV              Kind = "hrv"
	KindRestingHR        Kind = "resting_hr"
	KindSleepPerformance Kind = "sleep_performance"
	KindSleepEfficiency  Kind = "sleep_efficiency"
	KindSleepDuration    Kind = "sleep_duration"
	KindSleepNeed        Kind = "sleep_need"
	KindSleepDebt        Kind = "sleep_debt"
	KindBloodOxygen      Kind = "blood_oxygen"

	// KindCustom is any field the table does not recognize. The raw field
	// name travels alongside, so nothing is lost.
	KindCustom Kind = "custom"
)

// Value is a single cell from the export. Numeric-looking values are
// pre-converted at load time; Text always holds the original string.
type Value struct {
	Text    string
	Number  float64
	Numeric bool
}

// MetricRow is one reporting period (typically a day) from the export.
// Rows are immutable after load: there are no setters, only accessors,
// and reloading the export replaces the table rather than mutating it.
type MetricRow struct {
	// Date is the row's literal date label, if the export carried one.
	Date string

	// SourceFile is the base name of the export file this row came from.
	SourceFile string

	names  []string
	values map[string]Value
}

// NewMetricRow constructs a row from ordered field names and values.
// Callers (the CSV loader, tests) hand over ownership of both slices.
func NewMetricRow(date, sourceFile string, names []string, values map[string]Value) MetricRow {
	return MetricRow{Date: date, SourceFile: sourceFile, names: names, values: values}
}

// FieldNames returns the row's field names in export column order.
func (r MetricRow) FieldNames() []string {
	return r.names
}

// Value returns the named field's value and whether it is present.
// Blank cells are normalized away at load time, so present means non-empty.
func (r MetricRow) Value(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Number returns the named field's numeric value. The second return is
// false when the field is absent or not numeric; malformed cells are
// excluded rather than substituted with zero.
func (r MetricRow) Number(name string) (float64, bool) {
	v, ok := r.values[name]
	if !ok || !v.Numeric {
		return 0, false
	}
	return v.Number, true
}

// Text returns the named field's rendered string, or "" when absent.
func (r MetricRow) Text(name string) string {
	v, ok := r.values[name]
	if !ok {
		return ""
	}
	return v.Text
}

// CurrentMetric is a precomputed current-value summary derived from the
// most recent row, e.g. {"Recovery", "63%", "Yellow zone - moderate"}.
type CurrentMetric struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
}

// Trim returns the most recent n rows. It never copies row contents, only
// the slice header, preserving the no-mutation-after-load contract.
func Trim(rows []MetricRow, n int) []MetricRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
