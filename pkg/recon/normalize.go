package recon

import "strings"

// nbsp is the no-break space (U+00A0) that spreadsheet and database
// exports commonly carry in place of an ordinary space.
const nbsp = " "

// Normalize canonicalizes a raw cell value for comparison: no-break
// spaces become ordinary spaces, the value is lowercased, surrounding
// whitespace is trimmed, and interior whitespace runs collapse to a
// single space. Every input has a defined output (whitespace-only input
// normalizes to the empty string), and the function is idempotent.
//
// Two raw cells are the same key iff their normalized values are equal.
// An empty normalized value is never a comparable key.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, nbsp, " ")
	s = strings.ToLower(s)
	// Fields splits on Unicode whitespace, which trims and collapses in
	// one pass.
	return strings.Join(strings.Fields(s), " ")
}
