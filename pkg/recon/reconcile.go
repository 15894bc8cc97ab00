package recon

// Entry is one reported key with its provenance and occurrence counts on
// both sides. A side with no occurrences has a nil row list and count 0.
// Gap is the occurrence-count difference magnitude; it is only meaningful
// in ModeCounts and stays 0 in ModeUnique.
type Entry struct {
	Key         Key
	SourceRows  []int
	TargetRows  []int
	SourceCount int
	TargetCount int
	Gap         int
}

// Diff is the raw comparison outcome: keys under-represented in the
// target (Missing) and over-represented in the target (Extra), both
// sorted component-wise ascending, plus the mode's headline totals.
//
// The two modes' totals are different statistics and must not be
// conflated: ModeUnique counts distinct keys, ModeCounts sums
// occurrence-count gaps. Mode records which one the totals carry.
type Diff struct {
	Mode         Mode
	Missing      []Entry
	Extra        []Entry
	MissingTotal int
	ExtraTotal   int
}

// HasDiscrepancies reports whether the comparison found any mismatch.
func (d *Diff) HasDiscrepancies() bool {
	return d.MissingTotal > 0 || d.ExtraTotal > 0
}

// Unique compares key presence only: missing = keys(a) − keys(b), extra
// = keys(b) − keys(a), occurrence counts ignored. Each entry carries its
// own side's provenance rows and occurrence count for reference; the
// headline totals count distinct keys.
func Unique(a, b *Index) *Diff {
	diff := &Diff{
		Mode:    ModeUnique,
		Missing: []Entry{},
		Extra:   []Entry{},
	}

	for _, k := range a.Keys() {
		if b.Count(k) > 0 {
			continue
		}
		diff.Missing = append(diff.Missing, Entry{
			Key:         k,
			SourceRows:  a.Rows(k),
			SourceCount: a.Count(k),
		})
	}

	for _, k := range b.Keys() {
		if a.Count(k) > 0 {
			continue
		}
		diff.Extra = append(diff.Extra, Entry{
			Key:         k,
			TargetRows:  b.Rows(k),
			TargetCount: b.Count(k),
		})
	}

	diff.MissingTotal = len(diff.Missing)
	diff.ExtraTotal = len(diff.Extra)
	return diff
}

// Counts compares per-key occurrence counts over the sorted union of both
// key sets. A key occurring more often in the source records a deficit
// entry under Missing with the gap magnitude; more often in the target, a
// surplus entry under Extra. Equal counts produce no entry. The headline
// totals are the sums of gap magnitudes.
func Counts(a, b *Index) *Diff {
	diff := &Diff{
		Mode:    ModeCounts,
		Missing: []Entry{},
		Extra:   []Entry{},
	}

	for _, k := range unionKeys(a, b) {
		ca, cb := a.Count(k), b.Count(k)
		switch {
		case ca > cb:
			diff.Missing = append(diff.Missing, Entry{
				Key:         k,
				SourceRows:  a.Rows(k),
				TargetRows:  b.Rows(k),
				SourceCount: ca,
				TargetCount: cb,
				Gap:         ca - cb,
			})
			diff.MissingTotal += ca - cb
		case cb > ca:
			diff.Extra = append(diff.Extra, Entry{
				Key:         k,
				SourceRows:  a.Rows(k),
				TargetRows:  b.Rows(k),
				SourceCount: ca,
				TargetCount: cb,
				Gap:         cb - ca,
			})
			diff.ExtraTotal += cb - ca
		}
	}

	return diff
}

// unionKeys merges the two indexes' sorted key lists into one sorted
// list without duplicates.
func unionKeys(a, b *Index) []Key {
	ka, kb := a.Keys(), b.Keys()
	out := make([]Key, 0, len(ka)+len(kb))

	i, j := 0, 0
	for i < len(ka) && j < len(kb) {
		switch c := ka[i].Compare(kb[j]); {
		case c < 0:
			out = append(out, ka[i])
			i++
		case c > 0:
			out = append(out, kb[j])
			j++
		default:
			out = append(out, ka[i])
			i++
			j++
		}
	}
	out = append(out, ka[i:]...)
	return append(out, kb[j:]...)
}
