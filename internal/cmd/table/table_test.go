package table

import (
	"reflect"
	"testing"

	"github.com/veritab/veritab/pkg/recon"
	"github.com/veritab/veritab/pkg/tabular"
)

func TestSummaryData(t *testing.T) {
	data := SummaryData(recon.Summary{
		Mode:         recon.ModeUnique,
		SourceLabel:  "src.csv",
		TargetLabel:  "query",
		SourceRows:   3,
		TargetRows:   2,
		SourceUnique: 2,
		TargetUnique: 2,
		Missing:      1,
		Extra:        1,
		MismatchPct:  recon.NewPercentage(2, 2),
	})

	if !reflect.DeepEqual(data.Headers, []string{"Metric", "Value"}) {
		t.Errorf("headers = %v", data.Headers)
	}
	if len(data.Rows) != 10 {
		t.Fatalf("row count = %d, want 10", len(data.Rows))
	}
	if !reflect.DeepEqual(data.Rows[0], []string{"Mode", "unique"}) {
		t.Errorf("mode row = %v", data.Rows[0])
	}
	if !reflect.DeepEqual(data.Rows[9], []string{"Mismatch", "100.00%"}) {
		t.Errorf("mismatch row = %v", data.Rows[9])
	}
}

func TestRecordsData(t *testing.T) {
	records := []recon.Record{
		{
			Values:      []string{"a-1"},
			SourceRows:  "2, 3",
			TargetRows:  "2",
			SourceCount: 2,
			TargetCount: 1,
			Gap:         1,
		},
	}

	tests := []struct {
		name        string
		mode        recon.Mode
		fromSource  bool
		wide        bool
		wantHeaders []string
		wantRow     []string
	}{
		{
			name:        "unique source side",
			mode:        recon.ModeUnique,
			fromSource:  true,
			wantHeaders: []string{"account", "count"},
			wantRow:     []string{"a-1", "2"},
		},
		{
			name:        "unique target side",
			mode:        recon.ModeUnique,
			fromSource:  false,
			wantHeaders: []string{"account", "count"},
			wantRow:     []string{"a-1", "1"},
		},
		{
			name:        "unique wide shows provenance",
			mode:        recon.ModeUnique,
			fromSource:  true,
			wide:        true,
			wantHeaders: []string{"account", "rows", "count"},
			wantRow:     []string{"a-1", "2, 3", "2"},
		},
		{
			name:        "counts",
			mode:        recon.ModeCounts,
			fromSource:  true,
			wantHeaders: []string{"account", "source_count", "target_count", "gap"},
			wantRow:     []string{"a-1", "2", "1", "1"},
		},
		{
			name:        "counts wide",
			mode:        recon.ModeCounts,
			fromSource:  true,
			wide:        true,
			wantHeaders: []string{"account", "source_rows", "source_count", "target_rows", "target_count", "gap"},
			wantRow:     []string{"a-1", "2, 3", "2", "2", "1", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := RecordsData([]string{"account"}, records, tt.mode, tt.fromSource, tt.wide)
			if !reflect.DeepEqual(data.Headers, tt.wantHeaders) {
				t.Errorf("headers = %v, want %v", data.Headers, tt.wantHeaders)
			}
			if len(data.Rows) != 1 {
				t.Fatalf("row count = %d, want 1", len(data.Rows))
			}
			if !reflect.DeepEqual(data.Rows[0], tt.wantRow) {
				t.Errorf("row = %v, want %v", data.Rows[0], tt.wantRow)
			}
			if len(data.ColumnAlignment) != len(data.Headers) {
				t.Errorf("alignment count = %d, headers = %d", len(data.ColumnAlignment), len(data.Headers))
			}
		})
	}
}

func TestPreviewData(t *testing.T) {
	tbl, err := tabular.New("t.csv", []string{"id"}, [][]string{{"1"}, {"2"}, {"3"}})
	if err != nil {
		t.Fatal(err)
	}

	data := PreviewData(tbl, 2)
	if len(data.Rows) != 2 {
		t.Errorf("limited rows = %d, want 2", len(data.Rows))
	}

	data = PreviewData(tbl, 0)
	if len(data.Rows) != 3 {
		t.Errorf("unlimited rows = %d, want 3", len(data.Rows))
	}

	data = PreviewData(tbl, 10)
	if len(data.Rows) != 3 {
		t.Errorf("overlong limit rows = %d, want 3", len(data.Rows))
	}
}
