package globals

import "github.com/spf13/cobra"

// SelectionFlags holds the key-selection flags shared by comparison
// commands.
type SelectionFlags struct {
	Columns       []string // same selection on both sides
	SourceColumns []string
	TargetColumns []string
	Dedupe        bool
	Limit         int
}

// AddSelectionFlags adds key-selection flags to a command.
func AddSelectionFlags(cmd *cobra.Command) *SelectionFlags {
	flags := &SelectionFlags{}

	cmd.Flags().StringSliceVarP(&flags.Columns, "columns", "c", nil,
		"Key column(s), same names on both sides (1-4)")
	cmd.Flags().StringSliceVar(&flags.SourceColumns, "source-columns", nil,
		"Key column(s) in the source, when names differ")
	cmd.Flags().StringSliceVar(&flags.TargetColumns, "target-columns", nil,
		"Key column(s) in the target, when names differ")
	cmd.Flags().BoolVar(&flags.Dedupe, "dedupe", true,
		"Compare key presence only; with =false compare per-key counts")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit row numbers shown per key (0 = default cap, negative = no cap)")

	return flags
}

// Resolve returns the effective per-side selections: the side-specific
// flags win, --columns fills whichever side is unset.
func (f *SelectionFlags) Resolve() (source, target []string) {
	source = f.SourceColumns
	if len(source) == 0 {
		source = f.Columns
	}
	target = f.TargetColumns
	if len(target) == 0 {
		target = f.Columns
	}
	return source, target
}
