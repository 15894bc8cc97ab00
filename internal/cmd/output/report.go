package output

import (
	"fmt"
	"io"
	"os"

	"github.com/veritab/veritab/internal/cmd/globals"
	"github.com/veritab/veritab/internal/cmd/table"
	"github.com/veritab/veritab/pkg/recon"
	"github.com/veritab/veritab/pkg/tabular"
)

// Verdict lines for the table rendering of a report.
const (
	VerdictPass       = "PASS"
	VerdictPassErrors = "PASS WITH ERRORS"
)

// FormatReport renders a comparison report to stdout. Table formats
// print the summary and both discrepancy sides with a final verdict
// line (quiet prints just the verdict); json/yaml emit the report
// structure unchanged.
func FormatReport(report *recon.Report, flags *globals.Flags) error {
	format := DetectFormat(flags.Output)
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, FormatWide:
		return writeReportTables(os.Stdout, report, formatter, format == FormatWide, flags.Quiet)
	default:
		return formatter.Format(os.Stdout, report)
	}
}

func writeReportTables(w io.Writer, report *recon.Report, formatter Formatter, wide, quiet bool) error {
	verdict := VerdictPass
	if report.HasDiscrepancies() {
		verdict = VerdictPassErrors
	}

	if quiet {
		_, err := fmt.Fprintln(w, verdict)
		return err
	}

	if err := formatter.Format(w, table.SummaryData(report.Summary)); err != nil {
		return err
	}

	mode := report.Summary.Mode
	fmt.Fprintf(w, "\nMissing in target (source - target): %d\n", report.Summary.Missing)
	if len(report.Missing) > 0 {
		if err := formatter.Format(w, table.RecordsData(report.SourceColumns, report.Missing, mode, true, wide)); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nExtra in target (target - source): %d\n", report.Summary.Extra)
	if len(report.Extra) > 0 {
		if err := formatter.Format(w, table.RecordsData(report.TargetColumns, report.Extra, mode, false, wide)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", verdict)
	return err
}

// Preview is the shape FormatPreview renders for one loaded table.
type Preview struct {
	Label     string     `json:"label" yaml:"label"`
	Columns   []string   `json:"columns" yaml:"columns"`
	Rows      [][]string `json:"rows" yaml:"rows"`
	TotalRows int        `json:"total_rows" yaml:"total_rows"`
}

// NewPreview builds the preview payload for the first limit rows of t.
// A limit of 0 or less includes every row.
func NewPreview(t *tabular.Table, limit int) Preview {
	if limit <= 0 {
		limit = t.NumRows()
	}
	return Preview{
		Label:     t.Label(),
		Columns:   t.Columns(),
		Rows:      t.Head(limit),
		TotalRows: t.NumRows(),
	}
}

// FormatPreview renders the first limit rows of a loaded table.
func FormatPreview(t *tabular.Table, limit int, flags *globals.Flags) error {
	format := DetectFormat(flags.Output)
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, FormatWide:
		if !flags.Quiet {
			fmt.Printf("%s: %d rows, %d columns\n", t.Label(), t.NumRows(), t.NumColumns())
		}
		return formatter.Format(os.Stdout, table.PreviewData(t, limit))
	default:
		return formatter.Format(os.Stdout, NewPreview(t, limit))
	}
}

// FormatAny handles the common pattern of formatting any data type for
// output. Useful for commands with custom data structures.
func FormatAny(data any, flags *globals.Flags) error {
	formatter := NewFormatter(DetectFormat(flags.Output))
	return formatter.Format(os.Stdout, data)
}
