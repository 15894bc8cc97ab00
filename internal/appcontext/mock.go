package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/veritab/veritab"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	SessionFunc          func() (*veritab.Session, error)
	NewSessionFunc       func(...veritab.Option) (*veritab.Session, error)
	LoggerFunc           func() *zerolog.Logger
	OutputFormatFunc     func() string
	DatabaseDefaultsFunc func() (string, string)
	VersionFunc          func() string
	CommitFunc           func() string
	DateFunc             func() string
	BuiltByFunc          func() string
}

// Session returns a session using the mock function or a fresh empty session.
func (m *Mock) Session() (*veritab.Session, error) {
	if m.SessionFunc != nil {
		return m.SessionFunc()
	}
	return veritab.New()
}

// NewSession returns a session using the mock function or a real one.
func (m *Mock) NewSession(opts ...veritab.Option) (*veritab.Session, error) {
	if m.NewSessionFunc != nil {
		return m.NewSessionFunc(opts...)
	}
	return veritab.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// DatabaseDefaults returns defaults using the mock function or empty strings.
func (m *Mock) DatabaseDefaults() (string, string) {
	if m.DatabaseDefaultsFunc != nil {
		return m.DatabaseDefaultsFunc()
	}
	return "", ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
