package recon_test

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritab/veritab/pkg/recon"
)

func TestNewPercentage(t *testing.T) {
	tests := []struct {
		name        string
		numerator   int
		denominator int
		want        string
	}{
		{"exact", 1, 2, "50.00%"},
		{"repeating rounds", 1, 3, "33.33%"},
		{"rounds half up", 1, 800, "0.13%"},
		{"zero numerator", 0, 5, "0.00%"},
		{"over 100", 3, 2, "150.00%"},
		{"zero denominator", 3, 0, "N/A"},
		{"negative denominator", 3, -1, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := recon.NewPercentage(tt.numerator, tt.denominator)
			assert.Equal(t, tt.want, p.String())
			assert.Equal(t, tt.want != "N/A", p.Valid())
		})
	}
}

func TestPercentageMarshal(t *testing.T) {
	t.Run("JSON number when valid", func(t *testing.T) {
		b, err := json.Marshal(recon.NewPercentage(1, 3))
		require.NoError(t, err)
		assert.Equal(t, "33.33", string(b))
	})

	t.Run("JSON null when not applicable", func(t *testing.T) {
		b, err := json.Marshal(recon.Percentage{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))
	})

	t.Run("YAML value when valid", func(t *testing.T) {
		v, err := recon.NewPercentage(1, 2).MarshalYAML()
		require.NoError(t, err)
		assert.Equal(t, 50.0, v)
	})

	t.Run("YAML null when not applicable", func(t *testing.T) {
		v, err := recon.Percentage{}.MarshalYAML()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Float64", func(t *testing.T) {
		assert.Equal(t, 50.0, recon.NewPercentage(1, 2).Float64())
		assert.Zero(t, recon.Percentage{}.Float64())
	})
}

func TestAssembleSummary(t *testing.T) {
	a := buildIndex(t, "customers.xlsx", "a", "a", "b")
	b := buildIndex(t, "query", "a", "c")

	t.Run("unique mode", func(t *testing.T) {
		report := recon.Assemble(recon.Unique(a, b), a, b)

		s := report.Summary
		assert.Equal(t, recon.ModeUnique, s.Mode)
		assert.Equal(t, "customers.xlsx", s.SourceLabel)
		assert.Equal(t, "query", s.TargetLabel)
		assert.Equal(t, 3, s.SourceRows)
		assert.Equal(t, 2, s.TargetRows)
		assert.Equal(t, 2, s.SourceUnique)
		assert.Equal(t, 2, s.TargetUnique)
		assert.Equal(t, 1, s.Missing)
		assert.Equal(t, 1, s.Extra)
		// (1+1)/2*100
		assert.Equal(t, "100.00%", s.MismatchPct.String())
		assert.True(t, report.HasDiscrepancies())
	})

	t.Run("counts mode totals are gap sums", func(t *testing.T) {
		report := recon.Assemble(recon.Counts(a, b), a, b)

		s := report.Summary
		assert.Equal(t, recon.ModeCounts, s.Mode)
		assert.Equal(t, 2, s.Missing)
		assert.Equal(t, 1, s.Extra)
		// (2+1)/2*100
		assert.Equal(t, "150.00%", s.MismatchPct.String())
	})

	t.Run("percentage not applicable without source keys", func(t *testing.T) {
		empty := buildIndex(t, "empty")
		report := recon.Assemble(recon.Unique(empty, b), empty, b)

		assert.False(t, report.Summary.MismatchPct.Valid())
		assert.Equal(t, "N/A", report.Summary.MismatchPct.String())
	})

	t.Run("column selections recorded", func(t *testing.T) {
		report := recon.Assemble(recon.Unique(a, b), a, b)
		assert.Equal(t, []string{"val"}, report.SourceColumns)
		assert.Equal(t, []string{"val"}, report.TargetColumns)
	})
}

func TestAssembleRecords(t *testing.T) {
	t.Run("unique mode records", func(t *testing.T) {
		a := buildIndex(t, "source", "b", "x", "b")
		b := buildIndex(t, "target", "x", "c")

		report := recon.Assemble(recon.Unique(a, b), a, b)

		require.Len(t, report.Missing, 1)
		m := report.Missing[0]
		assert.Equal(t, []string{"b"}, m.Values)
		assert.Equal(t, "2, 4", m.SourceRows)
		assert.Empty(t, m.TargetRows)
		assert.Equal(t, 2, m.SourceCount)
		assert.Zero(t, m.TargetCount)
		assert.Zero(t, m.Gap)

		require.Len(t, report.Extra, 1)
		e := report.Extra[0]
		assert.Equal(t, []string{"c"}, e.Values)
		assert.Equal(t, "3", e.TargetRows)
		assert.Empty(t, e.SourceRows)
	})

	t.Run("counts mode records carry both sides", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "a", "b")
		b := buildIndex(t, "target", "a", "c")

		report := recon.Assemble(recon.Counts(a, b), a, b)

		require.Len(t, report.Missing, 2)
		m := report.Missing[0]
		assert.Equal(t, []string{"a"}, m.Values)
		assert.Equal(t, "2, 3", m.SourceRows)
		assert.Equal(t, "2", m.TargetRows)
		assert.Equal(t, 2, m.SourceCount)
		assert.Equal(t, 1, m.TargetCount)
		assert.Equal(t, 1, m.Gap)
	})

	t.Run("display limit elides long provenance", func(t *testing.T) {
		a := buildIndex(t, "source", "x", "x", "x", "x", "x")
		b := buildIndex(t, "target")

		report := recon.Assemble(recon.Counts(a, b), a, b, recon.WithDisplayLimit(3))

		require.Len(t, report.Missing, 1)
		assert.Equal(t, "2, 3, 4 +2 more", report.Missing[0].SourceRows)
	})

	t.Run("default display limit is 50", func(t *testing.T) {
		values := make([]string, 55)
		for i := range values {
			values[i] = "x"
		}
		a := buildIndex(t, "source", values...)
		b := buildIndex(t, "target")

		report := recon.Assemble(recon.Counts(a, b), a, b)

		require.Len(t, report.Missing, 1)

		// Rows 2..51 shown, 5 elided.
		shown := make([]string, 50)
		for i := range shown {
			shown[i] = strconv.Itoa(i + 2)
		}
		want := strings.Join(shown, ", ") + " +5 more"
		assert.Equal(t, want, report.Missing[0].SourceRows)
	})

	t.Run("no limit when zero", func(t *testing.T) {
		a := buildIndex(t, "source", "x", "x", "x")
		b := buildIndex(t, "target")

		report := recon.Assemble(recon.Counts(a, b), a, b, recon.WithDisplayLimit(0))
		assert.Equal(t, "2, 3, 4", report.Missing[0].SourceRows)
	})
}

func TestReportJSONShape(t *testing.T) {
	a := buildIndex(t, "source", "a")
	b := buildIndex(t, "target", "b")

	report := recon.Assemble(recon.Unique(a, b), a, b)

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "unique", summary["mode"])
	assert.Equal(t, float64(100), summary["mismatch_pct"])

	missing, ok := decoded["missing"].([]any)
	require.True(t, ok)
	require.Len(t, missing, 1)
}
