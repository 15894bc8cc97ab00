// Package export renders reconciliation reports into operator-facing
// artifacts: a multi-sheet Excel workbook and plain-text key lists
// suitable for pasting into a follow-up query or a message.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/veritab/veritab/pkg/constants"
	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/recon"
)

// Workbook sheet names.
const (
	SheetSummary = "Summary"
	SheetMissing = "Missing_in_Target"
	SheetExtra   = "Extra_in_Target"
)

// SheetName truncates name to the 31-character limit the XLSX format
// imposes on sheet names.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) <= constants.MaxSheetNameLength {
		return name
	}
	return string(r[:constants.MaxSheetNameLength])
}

// Workbook builds an Excel workbook from a report: a Summary sheet with
// the comparison metrics, plus one sheet per discrepancy side carrying
// the keys and their row provenance. The caller owns the returned file
// and must Close it.
func Workbook(report *recon.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName(SheetSummary)); err != nil {
		return nil, closeOnError(f, err)
	}
	if err := writeSummary(f, SheetName(SheetSummary), report.Summary); err != nil {
		return nil, closeOnError(f, err)
	}
	if err := writeRecords(f, SheetName(SheetMissing), report.SourceColumns, report.Missing, report.Summary.Mode, true); err != nil {
		return nil, closeOnError(f, err)
	}
	if err := writeRecords(f, SheetName(SheetExtra), report.TargetColumns, report.Extra, report.Summary.Mode, false); err != nil {
		return nil, closeOnError(f, err)
	}
	return f, nil
}

// WriteWorkbook streams the report workbook to w.
func WriteWorkbook(w io.Writer, report *recon.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return errors.WrapIO("write", "workbook", err)
	}
	return nil
}

// SaveWorkbook writes the report workbook to path.
func SaveWorkbook(path string, report *recon.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func closeOnError(f *excelize.File, err error) error {
	_ = f.Close()
	return err
}

func writeSummary(f *excelize.File, sheet string, s recon.Summary) error {
	rows := [][]interface{}{
		{"Mode", string(s.Mode)},
		{"Source", s.SourceLabel},
		{"Source rows", s.SourceRows},
		{"Source unique keys", s.SourceUnique},
		{"Target", s.TargetLabel},
		{"Target rows", s.TargetRows},
		{"Target unique keys", s.TargetUnique},
		{"Missing in target", s.Missing},
		{"Extra in target", s.Extra},
		{"Mismatch", s.MismatchPct.String()},
	}
	return writeRows(f, sheet, rows)
}

// writeRecords lays out one discrepancy side: the key columns first,
// then the provenance columns for the side (both sides plus the gap in
// duplicate-aware mode).
func writeRecords(f *excelize.File, sheet string, keyColumns []string, records []recon.Record, mode recon.Mode, fromSource bool) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(keyColumns)+5)
	for _, c := range keyColumns {
		header = append(header, c)
	}
	if mode == recon.ModeCounts {
		header = append(header, "source_rows", "source_count", "target_rows", "target_count", "gap")
	} else {
		header = append(header, "rows", "count")
	}

	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, header)
	for _, rec := range records {
		row := make([]interface{}, 0, len(header))
		for _, v := range rec.Values {
			row = append(row, v)
		}
		if mode == recon.ModeCounts {
			row = append(row, rec.SourceRows, rec.SourceCount, rec.TargetRows, rec.TargetCount, rec.Gap)
		} else if fromSource {
			row = append(row, rec.SourceRows, rec.SourceCount)
		} else {
			row = append(row, rec.TargetRows, rec.TargetCount)
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
