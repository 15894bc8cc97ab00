package recon

import (
	"sort"
	"strconv"
	"strings"
)

// Key is an ordered tuple of normalized cell values. Single-column
// comparisons use one part; composite keys carry one part per selected
// column, in selection order. Keys are compared component-wise, so key
// order is deterministic across runs.
type Key struct {
	Parts []string
}

// IsBlank reports whether every part is empty. Blank keys are excluded
// from indexes: a row whose selected cells all normalize to "" carries no
// comparable identity.
func (k Key) IsBlank() bool {
	for _, p := range k.Parts {
		if p != "" {
			return false
		}
	}
	return true
}

// Compare orders keys component-wise ascending. When one key is a strict
// prefix of the other, the shorter sorts first. Within one comparison all
// keys have equal arity, so the prefix case only arises across modes.
func (k Key) Compare(other Key) int {
	n := len(k.Parts)
	if len(other.Parts) < n {
		n = len(other.Parts)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(k.Parts[i], other.Parts[i]); c != 0 {
			return c
		}
	}
	return len(k.Parts) - len(other.Parts)
}

// Equal reports whether both keys have identical parts.
func (k Key) Equal(other Key) bool {
	return k.Compare(other) == 0
}

// String renders the key for logs and messages. Composite parts are
// joined with " | "; display surfaces that want one field per column use
// Parts directly.
func (k Key) String() string {
	return strings.Join(k.Parts, " | ")
}

// id returns an unambiguous map identity for the key. Parts are quoted
// before joining so part boundaries survive values that themselves
// contain the separator.
func (k Key) id() string {
	if len(k.Parts) == 1 {
		return k.Parts[0]
	}
	quoted := make([]string, len(k.Parts))
	for i, p := range k.Parts {
		quoted[i] = strconv.Quote(p)
	}
	return strings.Join(quoted, ",")
}

// SortKeys sorts keys in place, component-wise ascending.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
}
