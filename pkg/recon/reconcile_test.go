package recon_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritab/veritab/pkg/recon"
)

func buildIndex(t *testing.T, label string, values ...string) *recon.Index {
	t.Helper()
	idx, err := recon.BuildIndex(newColumnTable(t, label, values...), []string{"val"})
	require.NoError(t, err)
	return idx
}

func keyParts(entries []recon.Entry) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key.Parts
	}
	return out
}

func TestUnique(t *testing.T) {
	t.Run("presence only", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "a", "a", "a", "a", "b")
		b := buildIndex(t, "target", "a", "c")

		diff := recon.Unique(a, b)

		assert.Equal(t, recon.ModeUnique, diff.Mode)
		// Five occurrences of "a" count the same as one.
		assert.Equal(t, [][]string{{"b"}}, keyParts(diff.Missing))
		assert.Equal(t, [][]string{{"c"}}, keyParts(diff.Extra))
		assert.Equal(t, 1, diff.MissingTotal)
		assert.Equal(t, 1, diff.ExtraTotal)
		assert.True(t, diff.HasDiscrepancies())
	})

	t.Run("entries carry own-side provenance", func(t *testing.T) {
		a := buildIndex(t, "source", "b", "x", "b")
		b := buildIndex(t, "target", "x", "c")

		diff := recon.Unique(a, b)

		require.Len(t, diff.Missing, 1)
		missing := diff.Missing[0]
		assert.Equal(t, []string{"b"}, missing.Key.Parts)
		assert.Equal(t, []int{2, 4}, missing.SourceRows)
		assert.Equal(t, 2, missing.SourceCount)
		assert.Empty(t, missing.TargetRows)
		assert.Zero(t, missing.TargetCount)
		assert.Zero(t, missing.Gap)

		require.Len(t, diff.Extra, 1)
		extra := diff.Extra[0]
		assert.Equal(t, []string{"c"}, extra.Key.Parts)
		assert.Equal(t, []int{3}, extra.TargetRows)
		assert.Equal(t, 1, extra.TargetCount)
		assert.Empty(t, extra.SourceRows)
	})

	t.Run("identical indexes produce empty diff", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "b")
		b := buildIndex(t, "target", "b", "a")

		diff := recon.Unique(a, b)

		assert.Empty(t, diff.Missing)
		assert.Empty(t, diff.Extra)
		assert.False(t, diff.HasDiscrepancies())
	})

	t.Run("results sorted ascending", func(t *testing.T) {
		a := buildIndex(t, "source", "z", "m", "a")
		b := buildIndex(t, "target", "q")

		diff := recon.Unique(a, b)
		assert.Equal(t, [][]string{{"a"}, {"m"}, {"z"}}, keyParts(diff.Missing))
	})

	t.Run("symmetry", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "b", "c")
		b := buildIndex(t, "target", "b", "d")

		ab := recon.Unique(a, b)
		ba := recon.Unique(b, a)

		if diff := cmp.Diff(keyParts(ab.Missing), keyParts(ba.Extra)); diff != "" {
			t.Errorf("missing(a,b) != extra(b,a) (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(keyParts(ab.Extra), keyParts(ba.Missing)); diff != "" {
			t.Errorf("extra(a,b) != missing(b,a) (-want +got):\n%s", diff)
		}
	})

	t.Run("exhaustiveness over key union", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "b", "c", "e")
		b := buildIndex(t, "target", "b", "d", "e")

		diff := recon.Unique(a, b)

		missing := map[string]bool{}
		for _, e := range diff.Missing {
			missing[e.Key.String()] = true
		}
		extra := map[string]bool{}
		for _, e := range diff.Extra {
			extra[e.Key.String()] = true
		}

		seen := map[string]bool{}
		for _, k := range append(a.Keys(), b.Keys()...) {
			id := k.String()
			if seen[id] {
				continue
			}
			seen[id] = true

			matched := a.Count(k) > 0 && b.Count(k) > 0
			states := 0
			if matched {
				states++
			}
			if missing[id] {
				states++
			}
			if extra[id] {
				states++
			}
			assert.Equal(t, 1, states, "key %q must be in exactly one of matched/missing/extra", id)
		}
	})
}

func TestCounts(t *testing.T) {
	t.Run("per-key gaps", func(t *testing.T) {
		// source = [a a b], target = [a c]
		a := buildIndex(t, "source", "a", "a", "b")
		b := buildIndex(t, "target", "a", "c")

		diff := recon.Counts(a, b)

		assert.Equal(t, recon.ModeCounts, diff.Mode)
		require.Len(t, diff.Missing, 2)

		deficitA := diff.Missing[0]
		assert.Equal(t, []string{"a"}, deficitA.Key.Parts)
		assert.Equal(t, 2, deficitA.SourceCount)
		assert.Equal(t, 1, deficitA.TargetCount)
		assert.Equal(t, 1, deficitA.Gap)
		assert.Equal(t, []int{2, 3}, deficitA.SourceRows)
		assert.Equal(t, []int{2}, deficitA.TargetRows)

		deficitB := diff.Missing[1]
		assert.Equal(t, []string{"b"}, deficitB.Key.Parts)
		assert.Equal(t, 1, deficitB.Gap)

		require.Len(t, diff.Extra, 1)
		surplus := diff.Extra[0]
		assert.Equal(t, []string{"c"}, surplus.Key.Parts)
		assert.Equal(t, 1, surplus.Gap)
		assert.Zero(t, surplus.SourceCount)

		// Totals are summed magnitudes, not distinct-key counts.
		assert.Equal(t, 2, diff.MissingTotal)
		assert.Equal(t, 1, diff.ExtraTotal)
	})

	t.Run("equal counts produce no entry", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "a", "b")
		b := buildIndex(t, "target", "a", "a", "b")

		diff := recon.Counts(a, b)

		assert.Empty(t, diff.Missing)
		assert.Empty(t, diff.Extra)
		assert.Zero(t, diff.MissingTotal)
		assert.Zero(t, diff.ExtraTotal)
	})

	t.Run("union iterated in sorted order", func(t *testing.T) {
		a := buildIndex(t, "source", "d", "b", "d")
		b := buildIndex(t, "target", "a", "c", "c")

		diff := recon.Counts(a, b)

		assert.Equal(t, [][]string{{"b"}, {"d"}}, keyParts(diff.Missing))
		assert.Equal(t, [][]string{{"a"}, {"c"}}, keyParts(diff.Extra))
	})

	t.Run("conservation over key union", func(t *testing.T) {
		a := buildIndex(t, "source", "a", "a", "b", "c", "c", "c", "e")
		b := buildIndex(t, "target", "a", "b", "b", "c", "c", "c", "d")

		diff := recon.Counts(a, b)

		gaps := map[string]int{}
		for _, e := range diff.Missing {
			gaps[e.Key.String()] = e.Gap
		}
		for _, e := range diff.Extra {
			gaps[e.Key.String()] = -e.Gap
		}

		seen := map[string]bool{}
		for _, k := range append(a.Keys(), b.Keys()...) {
			id := k.String()
			if seen[id] {
				continue
			}
			seen[id] = true
			assert.Equal(t, a.Count(k)-b.Count(k), gaps[id],
				"count_a - count_b must equal the recorded gap for key %q", id)
		}
	})
}
