package loader

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

// utf8BOM is the byte order mark Excel prepends when exporting CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVFile loads a CSV file. The first record is the header row.
func CSVFile(path string) (*tabular.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapLoad(path, "csv", err)
	}
	return parseCSV(b, filepath.Base(path))
}

// CSV reads CSV data from r into a table labeled label. A UTF-8 byte
// order mark is stripped, fields are kept verbatim, and ragged records
// are tolerated: short rows are padded to the header width.
func CSV(r io.Reader, label string) (*tabular.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapLoad(label, "csv", err)
	}
	return parseCSV(b, label)
}

func parseCSV(b []byte, label string) (*tabular.Table, error) {
	b = bytes.TrimPrefix(b, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, &errors.LoadError{
			Path:    label,
			Format:  "csv",
			Message: "file has no header row",
			Err:     errors.ErrInvalidInput,
		}
	}
	if err != nil {
		return nil, errors.WrapLoad(label, "csv", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.WrapLoad(label, "csv", err)
		}
		rows = append(rows, rec)
	}
	return tabular.New(label, header, rows)
}
