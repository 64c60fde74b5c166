package health

import (
	"fmt"
	"math"
)

// Series extracts a single metric's numeric values from the table in
// canonical order: oldest first, index ascending with time. The table
// itself is most-recent-first, so extraction reverses. Cells that are
// absent or non-numeric are skipped, not zero-filled; a sparse column
// simply yields a shorter series.
func Series(rows []MetricRow, field string) []float64 {
	var out []float64
	for i := len(rows) - 1; i >= 0; i-- {
		if n, ok := rows[i].Number(field); ok {
			out = append(out, n)
		}
	}
	return out
}

// SeriesLastN extracts up to the n most recent values of a metric, still
// ordered oldest first.
func SeriesLastN(rows []MetricRow, field string, n int) []float64 {
	s := Series(rows, field)
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// FormatDuration renders raw minutes as "Hh Mm". Hours are the floored
// quotient and minutes the rounded remainder; a remainder that rounds to
// a full hour rolls over.
func FormatDuration(minutes float64) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	h := int(minutes) / 60
	m := int(math.Round(math.Mod(minutes, 60)))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%s%dh %dm", sign, h, m)
}

// FormatValue renders a field value for display, applying duration
// formatting to minute-count fields.
func FormatValue(field string, v Value) string {
	if v.Numeric && IsDurationField(field) {
		return FormatDuration(v.Number)
	}
	return v.Text
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
