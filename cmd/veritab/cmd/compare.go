// Package cmd implements the veritab command tree. Every command takes
// its dependencies through appcontext.Interface so tests can swap in
// mocks.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/veritab/veritab"
	"github.com/veritab/veritab/internal/appcontext"
	"github.com/veritab/veritab/internal/cmd/globals"
	"github.com/veritab/veritab/internal/cmd/output"
	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/export"
)

// compareFlags holds the compare command's own flags; key selection
// lives in globals.SelectionFlags.
type compareFlags struct {
	sourcePath string
	targetPath string
	driver     string
	dsn        string
	query      string
	exportPath string
}

// NewCompareCommand creates the compare command with app dependencies.
func NewCompareCommand(app appcontext.Interface) *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a source table against a target",
		Long: `Compare loads a source table and a target table, indexes both by the
selected key columns, and reports the keys missing from the target and
the extras the target carries.

The source is always a file. The target is either a second file
(--target-file) or the result of a SQL query (--query, with --driver
and --dsn). With --dedupe (the default) only key presence is compared;
with --dedupe=false per-key occurrence counts are compared as well.`,
		Example: `  veritab compare --source billing.xlsx --target-file erp.csv -c invoice_id
  veritab compare --source items.csv --driver sqlite --dsn file:erp.db --query "SELECT sku, qty FROM items" -c sku --dedupe=false
  veritab compare --source a.csv --target-file b.csv --source-columns sku --target-columns item_no -o json
  veritab compare --source a.csv --target-file b.csv -c region,account --export report.xlsx`,
	}

	selection := globals.AddSelectionFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runCompare(cmd, app, flags, selection)
	}

	cmd.Flags().StringVar(&flags.sourcePath, "source", "",
		"Source file (.csv, .xlsx, .xlsm)")
	cmd.Flags().StringVar(&flags.targetPath, "target-file", "",
		"Target file, instead of a query")
	cmd.Flags().StringVar(&flags.driver, "driver", "",
		"Database driver for --query: sqlite, postgres, sqlserver")
	cmd.Flags().StringVar(&flags.dsn, "dsn", "",
		"Database connection string for --query")
	cmd.Flags().StringVar(&flags.query, "query", "",
		"SQL query that produces the target table")
	cmd.Flags().StringVar(&flags.exportPath, "export", "",
		"Write the full report to an .xlsx workbook at this path")

	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func runCompare(cmd *cobra.Command, app appcontext.Interface, flags *compareFlags, selection *globals.SelectionFlags) error {
	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	sourceColumns, targetColumns := selection.Resolve()
	if len(sourceColumns) == 0 || len(targetColumns) == 0 {
		return &errors.ValidationError{
			Field:   "columns",
			Message: "at least one key column is required (use --columns)",
		}
	}

	// The target comes from exactly one place.
	if flags.targetPath == "" && flags.query == "" {
		return &errors.ValidationError{
			Field:   "target",
			Message: "either --target-file or --query is required",
		}
	}
	if flags.targetPath != "" && flags.query != "" {
		return &errors.ValidationError{
			Field:   "target",
			Message: "--target-file and --query are mutually exclusive",
		}
	}

	var sessionOpts []veritab.Option
	if selection.Limit != 0 {
		sessionOpts = append(sessionOpts, veritab.WithDisplayLimit(selection.Limit))
	}
	session, err := app.NewSession(sessionOpts...)
	if err != nil {
		return err
	}

	if _, err := session.LoadSource(flags.sourcePath); err != nil {
		return err
	}

	if flags.targetPath != "" {
		if _, err := session.LoadTarget(flags.targetPath); err != nil {
			return err
		}
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
		if _, err := session.LoadTargetQuery(cmd.Context(), driver, dsn, flags.query); err != nil {
			return err
		}
	}

	report, err := session.Compare(sourceColumns, targetColumns, selection.Dedupe)
	if err != nil {
		return err
	}

	if flags.exportPath != "" {
		if err := export.SaveWorkbook(flags.exportPath, report); err != nil {
			return err
		}
		app.Logger().Info().Str("path", flags.exportPath).Msg("Workbook written")
	}

	return output.FormatReport(report, globalFlags)
}
