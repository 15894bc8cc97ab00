// Package app provides the application context and dependency management
// for the veritab CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veritab/veritab"
	"github.com/veritab/veritab/internal/cmd/globals"
)

// App represents the veritab application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the default session, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Global flags, bound to the root command's persistent flags
	flags *globals.Flags

	// Logger
	logger *zerolog.Logger

	// Default session (lazy-initialized, singleton)
	mu      sync.RWMutex
	session *veritab.Session
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		flags:   &globals.Flags{},
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// DatabaseDefaults returns the configured default driver and DSN.
func (a *App) DatabaseDefaults() (string, string) {
	return a.config.Driver, a.config.DSN
}

// Session returns the default session, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Session() (*veritab.Session, error) {
	a.mu.RLock()
	if a.session != nil {
		s := a.session
		a.mu.RUnlock()
		return s, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.session != nil {
		return a.session, nil
	}

	s, err := veritab.New(a.buildSessionOptions()...)
	if err != nil {
		return nil, err
	}

	a.session = s
	return s, nil
}

// NewSession returns a fresh session with custom options layered over
// the app defaults. This is useful for commands that need specific
// configurations different from the default session (e.g. compare with
// a custom display limit).
func (a *App) NewSession(opts ...veritab.Option) (*veritab.Session, error) {
	return veritab.New(append(a.buildSessionOptions(), opts...)...)
}

// Shutdown performs graceful shutdown of the application.
// It drops any loaded tables held by the default session.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	s := a.session
	a.mu.RUnlock()

	if s != nil {
		s.Reset()
	}

	return nil
}

// buildSessionOptions constructs session options from the app configuration.
func (a *App) buildSessionOptions() []veritab.Option {
	return []veritab.Option{
		veritab.WithLogger(a.logger),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSession sets a custom default session (useful for testing).
func WithSession(s *veritab.Session) Option {
	return func(a *App) error {
		a.session = s
		return nil
	}
}
