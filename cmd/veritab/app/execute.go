package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/veritab/veritab/cmd/veritab/cmd"
	"github.com/veritab/veritab/internal/cmd/globals"
)

// Execute runs the veritab CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	// Create root command with app context
	rootCmd := a.createRootCommand()

	// Set arguments
	rootCmd.SetArgs(args)

	// Execute with context
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "veritab",
		Short:   "Reconcile tabular datasets",
		Version: a.version,
		Long: `Veritab compares two tabular datasets by key columns and reports the
keys missing from the target alongside the extras the target carries
that the source does not.

Either side can come from a CSV file, an Excel workbook, or a SQL query.
Cells are treated as text end to end, so identifiers keep their leading
zeros and amounts keep their exact formatting.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Add global flags
	a.flags = globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.veritab.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("veritab {{.Version}}\n")

	// Register all commands
	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(c *cobra.Command, _ []string) error {
	// Re-read configuration when --config names an explicit file
	if configFile := mustGetString(c, "config"); configFile != "" && configFile != a.config.ConfigFile {
		config, err := LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	// Update config from parsed flags. The flags struct is bound to the
	// root command's persistent flags, so it is populated by now.
	logLevel := mustGetString(c, "log-level")
	a.config.UpdateFromFlags(a.flags.Verbose, a.flags.Quiet, a.flags.NoColor, a.flags.Output, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(cmd.NewCompareCommand(a))
	rootCmd.AddCommand(cmd.NewInspectCommand(a))
	rootCmd.AddCommand(cmd.NewServeCommand(a))
	rootCmd.AddCommand(cmd.NewVersionCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
