// Package tabular provides the boundary type for loaded tabular data.
//
// A Table is an immutable, ordered grid of string cells under normalized,
// unique column names. Loaders produce Tables and the reconciliation core
// consumes them. Cells hold exactly what the loader read: blanks stay
// blank, nothing is substituted for missing values, and no type coercion
// happens. Value normalization for comparison is the core's concern, not
// the Table's.
package tabular

import (
	"fmt"
	"strings"

	"github.com/veritab/veritab/pkg/errors"
)

// Table is an ordered collection of rows under normalized column names.
// Construction validates that normalized names are unique; lookups by
// column name fail fast with a ColumnNotFoundError naming the available
// columns.
type Table struct {
	label   string
	columns []string
	index   map[string]int
	rows    [][]string
}

// NormalizeColumn canonicalizes a column name for lookup: leading and
// trailing whitespace is trimmed, the name is lowercased, and interior
// spaces are removed, so "Customer Account" and "customeraccount" select
// the same column.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// New builds a Table from a header and data rows. Column names are
// normalized and must be unique after normalization. Rows shorter than the
// header are padded with empty cells and longer rows are truncated, so
// every row has exactly one cell per column.
func New(label string, columns []string, rows [][]string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.NewValidationError("columns", columns, "table has no columns")
	}

	normalized := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		n := NormalizeColumn(c)
		if prev, ok := index[n]; ok {
			return nil, errors.NewValidationError("columns", c,
				fmt.Sprintf("columns %d and %d both normalize to %q", prev+1, i+1, n))
		}
		normalized[i] = n
		index[n] = i
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, len(columns))
		copy(r, row)
		data[i] = r
	}

	return &Table{
		label:   label,
		columns: normalized,
		index:   index,
		rows:    data,
	}, nil
}

// Label returns the table's display label (a file name, "source", ...).
func (t *Table) Label() string {
	return t.label
}

// Columns returns the normalized column names in their original order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the number of data rows (the header is not a data row).
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the table has a column with the given name
// after normalization.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[NormalizeColumn(name)]
	return ok
}

// ColumnIndex resolves a column name (normalized first) to its position.
func (t *Table) ColumnIndex(name string) (int, error) {
	n := NormalizeColumn(name)
	i, ok := t.index[n]
	if !ok {
		return 0, errors.NewColumnNotFoundError(t.label, n, t.Columns())
	}
	return i, nil
}

// Column returns all values of the named column in row order. Blank cells
// come back as empty strings.
func (t *Table) Column(name string) ([]string, error) {
	i, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Cell returns the value at the given 0-based data row and column
// position. Data row 0 is spreadsheet row 2 (the header is row 1).
func (t *Table) Cell(row, col int) string {
	return t.rows[row][col]
}

// Head returns copies of the first n data rows (all rows when the table
// has fewer than n).
func (t *Table) Head(n int) [][]string {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		r := make([]string, len(t.rows[i]))
		copy(r, t.rows[i])
		out[i] = r
	}
	return out
}
