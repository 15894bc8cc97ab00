package recon

import (
	"fmt"

	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

const (
	// firstDataRow is the 1-based number of the first data row; the
	// header occupies row 1. Row numbers are provenance only, never
	// identity.
	firstDataRow = 2

	// maxKeyColumns caps composite key width.
	maxKeyColumns = 4
)

// Index maps every key of one table's selected columns to the ordered
// row numbers where it occurs. Built once per comparison, immutable
// afterward.
type Index struct {
	label       string
	columns     []string
	entries     map[string]*entry
	keys        []Key
	tableRows   int
	occurrences int
}

// entry tracks one key's provenance in table order.
type entry struct {
	key  Key
	rows []int
}

// resolveColumns normalizes and validates a key column selection against
// a table: arity 1 to maxKeyColumns, no repeats after normalization,
// every name present in the table. Returns the normalized names and
// their cell positions.
func resolveColumns(t *tabular.Table, columns []string) ([]string, []int, error) {
	if len(columns) < 1 || len(columns) > maxKeyColumns {
		return nil, nil, errors.NewValidationError("columns", len(columns),
			fmt.Sprintf("key selection must name between 1 and %d columns", maxKeyColumns))
	}

	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = tabular.NormalizeColumn(c)
	}

	seen := make(map[string]struct{}, len(normalized))
	for _, n := range normalized {
		if _, dup := seen[n]; dup {
			return nil, nil, errors.NewDuplicateColumnError(n, normalized)
		}
		seen[n] = struct{}{}
	}

	positions := make([]int, len(normalized))
	for i, n := range normalized {
		pos, err := t.ColumnIndex(n)
		if err != nil {
			return nil, nil, err
		}
		positions[i] = pos
	}
	return normalized, positions, nil
}

// BuildIndex scans the table in row order and indexes the composite key
// of the selected columns, recording each occurrence's row number.
// Rows whose key is blank (all parts normalize to empty) are skipped.
// Validation is eager: the selection is checked in full before any row
// is read.
func BuildIndex(t *tabular.Table, columns []string) (*Index, error) {
	normalized, positions, err := resolveColumns(t, columns)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		label:     t.Label(),
		columns:   normalized,
		entries:   make(map[string]*entry),
		tableRows: t.NumRows(),
	}

	for r := 0; r < t.NumRows(); r++ {
		parts := make([]string, len(positions))
		for j, pos := range positions {
			parts[j] = Normalize(t.Cell(r, pos))
		}
		key := Key{Parts: parts}
		if key.IsBlank() {
			continue
		}

		id := key.id()
		e, ok := idx.entries[id]
		if !ok {
			e = &entry{key: key}
			idx.entries[id] = e
		}
		e.rows = append(e.rows, r+firstDataRow)
		idx.occurrences++
	}

	idx.keys = make([]Key, 0, len(idx.entries))
	for _, e := range idx.entries {
		idx.keys = append(idx.keys, e.key)
	}
	SortKeys(idx.keys)

	return idx, nil
}

// Label returns the indexed table's display label.
func (idx *Index) Label() string {
	return idx.label
}

// Columns returns the normalized key column names in selection order.
func (idx *Index) Columns() []string {
	out := make([]string, len(idx.columns))
	copy(out, idx.columns)
	return out
}

// Arity returns the number of key columns.
func (idx *Index) Arity() int {
	return len(idx.columns)
}

// Keys returns all keys sorted component-wise ascending.
func (idx *Index) Keys() []Key {
	out := make([]Key, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Count returns the key's occurrence count, 0 when absent.
func (idx *Index) Count(k Key) int {
	if e, ok := idx.entries[k.id()]; ok {
		return len(e.rows)
	}
	return 0
}

// Rows returns the key's provenance row numbers in table order. Lists
// are non-empty for every key present in the index.
func (idx *Index) Rows(k Key) []int {
	e, ok := idx.entries[k.id()]
	if !ok {
		return nil
	}
	out := make([]int, len(e.rows))
	copy(out, e.rows)
	return out
}

// UniqueKeys returns the number of distinct keys.
func (idx *Index) UniqueKeys() int {
	return len(idx.keys)
}

// Occurrences returns the number of non-blank key occurrences,
// duplicates counted.
func (idx *Index) Occurrences() int {
	return idx.occurrences
}

// TableRows returns the number of data rows scanned, blank keys
// included.
func (idx *Index) TableRows() int {
	return idx.tableRows
}
