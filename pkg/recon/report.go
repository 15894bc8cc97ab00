package recon

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/veritab/veritab/pkg/constants"
)

// Percentage is a two-decimal percentage that may be not applicable
// (undefined denominator). The zero value is not applicable; it renders
// as "N/A" and marshals to JSON/YAML null.
type Percentage struct {
	value decimal.Decimal
	valid bool
}

// NewPercentage computes numerator/denominator as a percentage rounded
// half-up to two decimal places. A denominator of zero or less yields
// the not-applicable value.
func NewPercentage(numerator, denominator int) Percentage {
	if denominator <= 0 {
		return Percentage{}
	}
	pct := decimal.NewFromInt(int64(numerator)).
		Div(decimal.NewFromInt(int64(denominator))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return Percentage{value: pct, valid: true}
}

// Valid reports whether the percentage is applicable.
func (p Percentage) Valid() bool {
	return p.valid
}

// Float64 returns the rounded value, 0 when not applicable.
func (p Percentage) Float64() float64 {
	if !p.valid {
		return 0
	}
	return p.value.InexactFloat64()
}

// String renders "12.34%" or "N/A".
func (p Percentage) String() string {
	if !p.valid {
		return "N/A"
	}
	return p.value.StringFixed(2) + "%"
}

// MarshalJSON emits the rounded number, or null when not applicable.
func (p Percentage) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return []byte(p.value.StringFixed(2)), nil
}

// MarshalYAML emits the rounded value, or null when not applicable.
func (p Percentage) MarshalYAML() (any, error) {
	if !p.valid {
		return nil, nil
	}
	return p.value.InexactFloat64(), nil
}

// Summary is the headline comparison outcome. Missing and Extra carry
// the mode's statistic: distinct keys in ModeUnique, summed occurrence
// gaps in ModeCounts. MismatchPct is
// (Missing+Extra)/SourceUnique*100 rounded to two places, not applicable
// when the source has no keys.
type Summary struct {
	Mode         Mode       `json:"mode" yaml:"mode"`
	SourceLabel  string     `json:"source" yaml:"source"`
	TargetLabel  string     `json:"target" yaml:"target"`
	SourceRows   int        `json:"source_rows" yaml:"source_rows"`
	TargetRows   int        `json:"target_rows" yaml:"target_rows"`
	SourceUnique int        `json:"source_unique_keys" yaml:"source_unique_keys"`
	TargetUnique int        `json:"target_unique_keys" yaml:"target_unique_keys"`
	Missing      int        `json:"missing" yaml:"missing"`
	Extra        int        `json:"extra" yaml:"extra"`
	MismatchPct  Percentage `json:"mismatch_pct" yaml:"mismatch_pct"`
}

// Record is one row of the itemized missing or extra list, formatted for
// display and export: key parts one field per selected column, provenance
// row numbers comma-joined (elided past the display limit), and the
// per-side occurrence counts with the gap magnitude (ModeCounts).
type Record struct {
	Values      []string `json:"values" yaml:"values"`
	SourceRows  string   `json:"source_rows,omitempty" yaml:"source_rows,omitempty"`
	TargetRows  string   `json:"target_rows,omitempty" yaml:"target_rows,omitempty"`
	SourceCount int      `json:"source_count" yaml:"source_count"`
	TargetCount int      `json:"target_count" yaml:"target_count"`
	Gap         int      `json:"gap" yaml:"gap"`
}

// Report is the assembled, render-ready comparison result.
type Report struct {
	Summary       Summary  `json:"summary" yaml:"summary"`
	SourceColumns []string `json:"source_columns" yaml:"source_columns"`
	TargetColumns []string `json:"target_columns" yaml:"target_columns"`
	Missing       []Record `json:"missing" yaml:"missing"`
	Extra         []Record `json:"extra" yaml:"extra"`
}

// HasDiscrepancies reports whether the comparison found any mismatch.
func (r *Report) HasDiscrepancies() bool {
	return r.Summary.Missing > 0 || r.Summary.Extra > 0
}

// ReportOption configures report assembly.
type ReportOption func(*reportConfig)

type reportConfig struct {
	displayLimit int
}

// WithDisplayLimit overrides how many provenance row numbers a record
// renders before eliding the rest with a "+N more" suffix. Zero or
// negative means no limit.
func WithDisplayLimit(n int) ReportOption {
	return func(cfg *reportConfig) {
		cfg.displayLimit = n
	}
}

// Assemble formats a Diff and its two indexes into a Report. Pure
// transformation: rendering and export are the caller's concern.
func Assemble(diff *Diff, a, b *Index, opts ...ReportOption) *Report {
	cfg := &reportConfig{displayLimit: constants.DisplayRowLimit}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Report{
		Summary: Summary{
			Mode:         diff.Mode,
			SourceLabel:  a.Label(),
			TargetLabel:  b.Label(),
			SourceRows:   a.TableRows(),
			TargetRows:   b.TableRows(),
			SourceUnique: a.UniqueKeys(),
			TargetUnique: b.UniqueKeys(),
			Missing:      diff.MissingTotal,
			Extra:        diff.ExtraTotal,
			MismatchPct:  NewPercentage(diff.MissingTotal+diff.ExtraTotal, a.UniqueKeys()),
		},
		SourceColumns: a.Columns(),
		TargetColumns: b.Columns(),
		Missing:       assembleRecords(diff.Missing, cfg.displayLimit),
		Extra:         assembleRecords(diff.Extra, cfg.displayLimit),
	}
}

func assembleRecords(entries []Entry, limit int) []Record {
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = Record{
			Values:      append([]string(nil), e.Key.Parts...),
			SourceRows:  formatRows(e.SourceRows, limit),
			TargetRows:  formatRows(e.TargetRows, limit),
			SourceCount: e.SourceCount,
			TargetCount: e.TargetCount,
			Gap:         e.Gap,
		}
	}
	return records
}

// formatRows comma-joins row numbers, keeping at most limit of them and
// noting how many were elided.
func formatRows(rows []int, limit int) string {
	if len(rows) == 0 {
		return ""
	}

	shown := rows
	elided := 0
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
		elided = len(rows) - limit
	}

	parts := make([]string, len(shown))
	for i, r := range shown {
		parts[i] = strconv.Itoa(r)
	}
	s := strings.Join(parts, ", ")
	if elided > 0 {
		s += " +" + strconv.Itoa(elided) + " more"
	}
	return s
}
