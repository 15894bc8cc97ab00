// Package constants provides shared constants used throughout the veritab codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// QueryTimeout is the timeout for a single reference query against
	// an external database
	QueryTimeout = 5 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout is how long the server waits for in-flight
	// requests during graceful shutdown
	ShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like connection strings (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// DisplayRowLimit is the maximum number of provenance row numbers
	// rendered per key in reports before eliding the remainder
	DisplayRowLimit = 50

	// PreviewRowLimit is the default number of data rows shown when
	// previewing a loaded table
	PreviewRowLimit = 50

	// MaxSheetNameLength is the hard cap Excel places on worksheet names
	MaxSheetNameLength = 31

	// MaxUploadBytes is the maximum accepted size of an uploaded table (50 MB)
	MaxUploadBytes = 50 << 20

	// WriteBufferSize is the default buffer size for write operations
	WriteBufferSize = 4096
)

// Session constants govern the server's in-memory session registry
const (
	// SessionTTL is how long an idle comparison session is retained
	SessionTTL = 30 * time.Minute

	// SessionCleanupInterval is how often expired sessions are evicted
	SessionCleanupInterval = 10 * time.Minute
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated report filenames
	TimeFormatFilename = "20060102-150405"
)
