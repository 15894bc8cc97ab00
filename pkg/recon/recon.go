// Package recon implements the reconciliation core: value normalization,
// provenance-tracking key indexes over table columns, set and multiset
// comparison of two indexes, and report assembly.
//
// The pipeline is pure and stateless. Two tabular.Tables go in, a Report
// comes out; loading, rendering, and export live elsewhere. Invocations
// are independent and safe to run concurrently on distinct inputs.
//
// Example usage:
//
//	report, err := recon.Compare(source, target,
//	    []string{"Customer Account"}, []string{"accountnum"},
//	    true)
//	if err != nil {
//	    return err
//	}
//	if report.HasDiscrepancies() {
//	    fmt.Println(report.Summary.Missing, "missing,", report.Summary.Extra, "extra")
//	}
package recon

import (
	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

// Mode identifies which statistic a comparison's headline totals carry.
type Mode string

const (
	// ModeUnique compares key presence only: five occurrences of a key
	// count the same as one, and totals are numbers of distinct keys.
	ModeUnique Mode = "unique"

	// ModeCounts compares per-key occurrence counts: totals are sums of
	// occurrence-count gaps, not distinct-key counts.
	ModeCounts Mode = "counts"
)

// Compare runs the whole pipeline over two tables: validate the column
// selections, build one index per side, reconcile, and assemble a report.
//
// The selectors must have equal arity: one column each for single-column
// keys, or 2-4 columns each for composite keys, paired in order. With
// deduplicate true the comparison is presence-only (ModeUnique); with
// false it is duplicate-aware (ModeCounts). All selector validation
// happens before either index is built.
func Compare(source, target *tabular.Table, sourceColumns, targetColumns []string, deduplicate bool, opts ...ReportOption) (*Report, error) {
	if len(sourceColumns) != len(targetColumns) {
		return nil, errors.NewArityError(len(sourceColumns), len(targetColumns))
	}
	if _, _, err := resolveColumns(source, sourceColumns); err != nil {
		return nil, err
	}
	if _, _, err := resolveColumns(target, targetColumns); err != nil {
		return nil, err
	}

	a, err := BuildIndex(source, sourceColumns)
	if err != nil {
		return nil, err
	}
	b, err := BuildIndex(target, targetColumns)
	if err != nil {
		return nil, err
	}

	var diff *Diff
	if deduplicate {
		diff = Unique(a, b)
	} else {
		diff = Counts(a, b)
	}
	return Assemble(diff, a, b, opts...), nil
}
