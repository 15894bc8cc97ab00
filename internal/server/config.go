package server

import (
	"time"

	"github.com/veritab/veritab/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	AuthHeader  string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)

	// Session registry settings
	SessionTTL     time.Duration
	SessionCleanup time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults. ReadTimeout
// allows large uploads on slow links; WriteTimeout must outlast
// QueryTimeout so target loads backed by slow reference queries can
// finish.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		CORSEnabled:    false,
		CORSOrigins:    []string{},
		AuthEnabled:    false,
		AuthHeader:     "X-API-Key",
		RateLimit:      100,
		SessionTTL:     constants.SessionTTL,
		SessionCleanup: constants.SessionCleanupInterval,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   constants.QueryTimeout + time.Minute,
		IdleTimeout:    120 * time.Second,
	}
}
