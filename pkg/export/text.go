package export

import (
	"strings"

	"github.com/veritab/veritab/pkg/recon"
)

// NonePlaceholder is rendered when a discrepancy side has no keys.
const NonePlaceholder = "(none)"

// Text renders records as a plain-text list for clipboard use: one key
// per line, multi-column key parts separated by tabs. An empty side
// renders the "(none)" placeholder.
func Text(records []recon.Record) string {
	if len(records) == 0 {
		return NonePlaceholder
	}
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = strings.Join(rec.Values, "\t")
	}
	return strings.Join(lines, "\n")
}
