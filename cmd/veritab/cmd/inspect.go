package cmd

import (
	"github.com/spf13/cobra"

	"github.com/veritab/veritab/internal/appcontext"
	"github.com/veritab/veritab/internal/cmd/globals"
	"github.com/veritab/veritab/internal/cmd/output"
	"github.com/veritab/veritab/internal/loader"
	"github.com/veritab/veritab/pkg/constants"
	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/tabular"
)

// inspectFlags holds the inspect command's flags.
type inspectFlags struct {
	driver string
	dsn    string
	query  string
	limit  int
}

// NewInspectCommand creates the inspect command with app dependencies.
func NewInspectCommand(app appcontext.Interface) *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Preview a table before comparing it",
		Long: `Inspect loads a single table and shows its column names and the first
rows, so key columns can be picked before running a compare. Cell
values are shown exactly as the loader sees them.

The table comes from a file argument or from a SQL query (--query,
with --driver and --dsn).`,
		Example: `  veritab inspect billing.xlsx
  veritab inspect exports/items.csv --limit 10
  veritab inspect --driver sqlite --dsn file:erp.db --query "SELECT * FROM invoices"
  veritab inspect billing.xlsx -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.driver, "driver", "",
		"Database driver for --query: sqlite, postgres, sqlserver")
	cmd.Flags().StringVar(&flags.dsn, "dsn", "",
		"Database connection string for --query")
	cmd.Flags().StringVar(&flags.query, "query", "",
		"SQL query that produces the table")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", constants.PreviewRowLimit,
		"Number of rows to preview (0 or negative shows all)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, app appcontext.Interface, flags *inspectFlags) error {
	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	// The table comes from exactly one place.
	if len(args) == 0 && flags.query == "" {
		return &errors.ValidationError{
			Field:   "table",
			Message: "either a file argument or --query is required",
		}
	}
	if len(args) > 0 && flags.query != "" {
		return &errors.ValidationError{
			Field:   "table",
			Message: "a file argument and --query are mutually exclusive",
		}
	}

	var t *tabular.Table
	if len(args) > 0 {
		t, err = loader.File(args[0])
	} else {
		driver, dsn := flags.driver, flags.dsn
		if driver == "" || dsn == "" {
			defaultDriver, defaultDSN := app.DatabaseDefaults()
			if driver == "" {
				driver = defaultDriver
			}
			if dsn == "" {
				dsn = defaultDSN
			}
		}
		t, err = loader.Query(cmd.Context(), driver, dsn, flags.query)
	}
	if err != nil {
		return err
	}

	app.Logger().Debug().
		Str("table", t.Label()).
		Int("rows", t.NumRows()).
		Int("columns", t.NumColumns()).
		Msg("Table loaded for preview")

	return output.FormatPreview(t, flags.limit, globalFlags)
}
