package health

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// dateLayouts are tried in order when parsing a row's date label.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseDate parses an export date label. Returns the zero time when no
// layout matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// LoadFile parses a single CSV export into MetricRows. The first record is
// the header; keys are lower-cased and trimmed, blank cells are dropped,
// and numeric-looking cells are pre-converted. Row order within the file
// is preserved; SortRecentFirst establishes the table invariant.
func LoadFile(path string) ([]MetricRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged exports

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing export %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil // header only, or empty
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	source := filepath.Base(path)
	rows := make([]MetricRow, 0, len(records)-1)

	for _, rec := range records[1:] {
		var names []string
		values := make(map[string]Value, len(rec))
		date := ""

		for i, cell := range rec {
			if i >= len(header) {
				break
			}
			key := header[i]
			cell = strings.TrimSpace(cell)
			if key == "" || cell == "" {
				continue
			}
			if key == FieldDate || key == "cycle start time" {
				if date == "" {
					date = cell
				}
			}
			v := Value{Text: cell}
			if n, err := strconv.ParseFloat(strings.TrimSuffix(cell, "%"), 64); err == nil {
				v.Number = n
				v.Numeric = true
			}
			names = append(names, key)
			values[key] = v
		}

		if len(names) == 0 {
			continue
		}
		rows = append(rows, NewMetricRow(date, source, names, values))
	}

	return rows, nil
}

// LoadDir loads every .csv file under dir concurrently and returns the
// merged table sorted most-recent-first.
func LoadDir(dir string) ([]MetricRow, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .csv exports found in %s", dir)
	}
	sort.Strings(matches)

	var (
		mu  sync.Mutex
		all []MetricRow
	)

	var g errgroup.Group
	for _, path := range matches {
		path := path
		g.Go(func() error {
			rows, err := LoadFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, rows...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortRecentFirst(all)
	return all, nil
}

// SortRecentFirst orders rows newest to oldest by their date label. Rows
// without a parseable date keep their relative position (stable sort), so
// a dateless export that was already newest-first stays that way.
func SortRecentFirst(rows []MetricRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := ParseDate(rows[i].Date), ParseDate(rows[j].Date)
		if ti.IsZero() || tj.IsZero() {
			return false
		}
		return ti.After(tj)
	})
}
