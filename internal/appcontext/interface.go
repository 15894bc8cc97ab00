// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/veritab/veritab"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/veritab/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Session returns the shared default session, creating it lazily if
	// needed. This is thread-safe and ensures only one instance is created.
	Session() (*veritab.Session, error)

	// NewSession creates a fresh session with custom options.
	// Use this when a command needs specific configuration (e.g. compare
	// with --limit).
	NewSession(...veritab.Option) (*veritab.Session, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// DatabaseDefaults returns the configured default driver and DSN,
	// used when a command's --driver/--dsn flags are not set.
	DatabaseDefaults() (driver, dsn string)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
