// Package loader reads tabular data into tables from the sources the
// reconciliation flow accepts: CSV and Excel files, and SQL query results.
//
// Every loader produces string-typed cells. CSV fields are kept verbatim,
// spreadsheet cells are read as raw stored values with no number format
// applied, and SQL values are scanned as raw bytes. NULL and absent cells
// become empty strings, never a placeholder token, so blanks survive the
// trip into key normalization.
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

// File extensions accepted by File, lower case with the leading dot.
const (
	extCSV  = ".csv"
	extXLSX = ".xlsx"
	extXLSM = ".xlsm"
)

// Extensions returns the file extensions File accepts.
func Extensions() []string {
	return []string{extCSV, extXLSX, extXLSM}
}

// File loads the table stored at path, picking the parser from the file
// extension. The table label is the file's base name.
func File(path string) (*tabular.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case extCSV:
		return CSVFile(path)
	case extXLSX, extXLSM:
		return XLSXFile(path)
	default:
		return nil, &errors.LoadError{
			Path:    path,
			Message: fmt.Sprintf("unsupported file extension %q (supported: %s)", ext, strings.Join(Extensions(), ", ")),
			Err:     errors.ErrUnsupported,
		}
	}
}

// Reader loads a table from r, picking the parser from name's extension.
// name labels the table, so uploads keep their original file name.
func Reader(r io.Reader, name string) (*tabular.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case extCSV:
		return CSV(r, name)
	case extXLSX, extXLSM:
		return XLSX(r, name)
	default:
		return nil, &errors.LoadError{
			Path:    name,
			Message: fmt.Sprintf("unsupported file extension %q (supported: %s)", ext, strings.Join(Extensions(), ", ")),
			Err:     errors.ErrUnsupported,
		}
	}
}
