package loader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

// XLSXFile loads the first sheet of an Excel workbook.
func XLSXFile(path string) (*tabular.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapLoad(path, "xlsx", err)
	}
	defer func() { _ = f.Close() }()

	return sheetTable(f, filepath.Base(path))
}

// XLSX reads an Excel workbook from r into a table labeled label.
func XLSX(r io.Reader, label string) (*tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapLoad(label, "xlsx", err)
	}
	defer func() { _ = f.Close() }()

	return sheetTable(f, label)
}

// sheetTable reads the workbook's first sheet as raw stored values.
// Number formats are not applied, so a cell stored as "12.50" stays
// "12.50". The first row is the header.
func sheetTable(f *excelize.File, label string) (*tabular.Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &errors.LoadError{
			Path:    label,
			Format:  "xlsx",
			Message: "workbook has no sheets",
			Err:     errors.ErrInvalidInput,
		}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapLoad(label, "xlsx", err)
	}
	if len(rows) == 0 {
		return nil, &errors.LoadError{
			Path:    label,
			Format:  "xlsx",
			Message: fmt.Sprintf("sheet %q has no header row", sheets[0]),
			Err:     errors.ErrInvalidInput,
		}
	}
	return tabular.New(label, rows[0], rows[1:])
}
