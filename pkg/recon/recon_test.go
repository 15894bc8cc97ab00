package recon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/recon"
)

func TestCompareSingleColumnUnique(t *testing.T) {
	// Source values A, b, A against target a, C: matching is
	// case-insensitive, so only b and c differ.
	source := newColumnTable(t, "source", "A", "b", "A")
	target := newColumnTable(t, "target", "a", "C")

	report, err := recon.Compare(source, target, []string{"val"}, []string{"val"}, true)
	require.NoError(t, err)

	s := report.Summary
	assert.Equal(t, recon.ModeUnique, s.Mode)
	assert.Equal(t, 3, s.SourceRows)
	assert.Equal(t, 2, s.TargetRows)
	assert.Equal(t, 2, s.SourceUnique)
	assert.Equal(t, 2, s.TargetUnique)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 1, s.Extra)

	require.Len(t, report.Missing, 1)
	assert.Equal(t, []string{"b"}, report.Missing[0].Values)
	require.Len(t, report.Extra, 1)
	assert.Equal(t, []string{"c"}, report.Extra[0].Values)
}

func TestCompareSingleColumnCounts(t *testing.T) {
	source := newColumnTable(t, "source", "a", "a", "b")
	target := newColumnTable(t, "target", "a", "c")

	report, err := recon.Compare(source, target, []string{"val"}, []string{"val"}, false)
	require.NoError(t, err)

	s := report.Summary
	assert.Equal(t, recon.ModeCounts, s.Mode)
	assert.Equal(t, 2, s.Missing)
	assert.Equal(t, 1, s.Extra)

	// a short one in target, b absent from target, c absent from source.
	require.Len(t, report.Missing, 2)
	assert.Equal(t, []string{"a"}, report.Missing[0].Values)
	assert.Equal(t, 1, report.Missing[0].Gap)
	assert.Equal(t, []string{"b"}, report.Missing[1].Values)
	assert.Equal(t, 1, report.Missing[1].Gap)

	require.Len(t, report.Extra, 1)
	assert.Equal(t, []string{"c"}, report.Extra[0].Values)
	assert.Equal(t, 1, report.Extra[0].Gap)
}

func TestCompareMultiColumn(t *testing.T) {
	// Composite key order follows each side's own selection, so callers
	// line up differently-ordered schemas by selecting columns in
	// matching order.
	source := newTable(t, "source", []string{"a", "b"},
		[]string{"1", "x"},
		[]string{"2", "y"},
	)
	target := newTable(t, "target", []string{"a", "b"},
		[]string{"y", "2"},
		[]string{"3", "z"},
	)

	report, err := recon.Compare(source, target,
		[]string{"a", "b"}, []string{"b", "a"}, true)
	require.NoError(t, err)

	// Target selection (b, a) yields keys ("2","y") and ("z","3"), so
	// source ("2","y") matches.
	require.Len(t, report.Missing, 1)
	assert.Equal(t, []string{"1", "x"}, report.Missing[0].Values)

	require.Len(t, report.Extra, 1)
	assert.Equal(t, []string{"z", "3"}, report.Extra[0].Values)
}

func TestCompareArityMismatch(t *testing.T) {
	source := newTable(t, "source", []string{"a", "b"}, []string{"1", "x"})
	target := newTable(t, "target", []string{"a", "b"}, []string{"1", "x"})

	_, err := recon.Compare(source, target, []string{"a", "b"}, []string{"a"}, true)
	require.Error(t, err)

	var arity *pkgerrors.ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 2, arity.SourceArity)
	assert.Equal(t, 1, arity.TargetArity)
}

func TestCompareValidatesBothSidesBeforeIndexing(t *testing.T) {
	source := newColumnTable(t, "source", "a")
	target := newColumnTable(t, "target", "a")

	_, err := recon.Compare(source, target, []string{"val"}, []string{"nope"}, true)
	require.Error(t, err)

	var cnf *pkgerrors.ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "target", cnf.Table)
	assert.Equal(t, "nope", cnf.Column)
}

func TestCompareSelectorNamesNormalized(t *testing.T) {
	source := newTable(t, "source", []string{"Customer Account"}, []string{"C-1"})
	target := newTable(t, "target", []string{"ACCOUNTNUM"}, []string{"c-1"})

	report, err := recon.Compare(source, target,
		[]string{"customer account"}, []string{"AccountNum"}, true)
	require.NoError(t, err)

	assert.False(t, report.HasDiscrepancies())
	assert.Equal(t, []string{"customeraccount"}, report.SourceColumns)
	assert.Equal(t, []string{"accountnum"}, report.TargetColumns)
}
