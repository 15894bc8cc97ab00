// Package table converts reports and previews into table data for CLI
// rendering.
package table

import (
	"strconv"

	"github.com/veritab/veritab/pkg/recon"
	"github.com/veritab/veritab/pkg/tabular"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the renderer's default alignment.
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents rows formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // optional per-column alignment
}

// SummaryData converts a comparison summary to a metric/value table.
func SummaryData(s recon.Summary) Data {
	return Data{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Mode", string(s.Mode)},
			{"Source", s.SourceLabel},
			{"Source rows", strconv.Itoa(s.SourceRows)},
			{"Source unique keys", strconv.Itoa(s.SourceUnique)},
			{"Target", s.TargetLabel},
			{"Target rows", strconv.Itoa(s.TargetRows)},
			{"Target unique keys", strconv.Itoa(s.TargetUnique)},
			{"Missing in target", strconv.Itoa(s.Missing)},
			{"Extra in target", strconv.Itoa(s.Extra)},
			{"Mismatch", s.MismatchPct.String()},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// RecordsData converts one discrepancy side to table data. The key
// columns come first. In duplicate-aware mode both sides' counts and
// the gap follow; in presence-only mode just the side's own count.
// Wide adds the row-provenance columns.
func RecordsData(keyColumns []string, records []recon.Record, mode recon.Mode, fromSource, wide bool) Data {
	headers := make([]string, 0, len(keyColumns)+5)
	aligns := make([]Align, 0, len(keyColumns)+5)
	headers = append(headers, keyColumns...)
	for range keyColumns {
		aligns = append(aligns, AlignDefault)
	}

	appendCol := func(name string, align Align) {
		headers = append(headers, name)
		aligns = append(aligns, align)
	}
	if mode == recon.ModeCounts {
		if wide {
			appendCol("source_rows", AlignLeft)
		}
		appendCol("source_count", AlignRight)
		if wide {
			appendCol("target_rows", AlignLeft)
		}
		appendCol("target_count", AlignRight)
		appendCol("gap", AlignRight)
	} else {
		if wide {
			appendCol("rows", AlignLeft)
		}
		appendCol("count", AlignRight)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(headers))
		row = append(row, rec.Values...)
		if mode == recon.ModeCounts {
			if wide {
				row = append(row, rec.SourceRows)
			}
			row = append(row, strconv.Itoa(rec.SourceCount))
			if wide {
				row = append(row, rec.TargetRows)
			}
			row = append(row, strconv.Itoa(rec.TargetCount), strconv.Itoa(rec.Gap))
		} else {
			count := rec.SourceCount
			provenance := rec.SourceRows
			if !fromSource {
				count = rec.TargetCount
				provenance = rec.TargetRows
			}
			if wide {
				row = append(row, provenance)
			}
			row = append(row, strconv.Itoa(count))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: aligns}
}

// PreviewData converts the first limit rows of a table for display.
// A limit of 0 or less shows every row.
func PreviewData(t *tabular.Table, limit int) Data {
	if limit <= 0 || limit > t.NumRows() {
		limit = t.NumRows()
	}
	return Data{
		Headers: t.Columns(),
		Rows:    t.Head(limit),
	}
}
