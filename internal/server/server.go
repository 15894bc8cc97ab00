// Package server provides the HTTP server for the veritab session API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/veritab/veritab/internal/appcontext"
	"github.com/veritab/veritab/internal/server/sessions"
	"github.com/veritab/veritab/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       appcontext.Interface
	sessions  *sessions.Registry
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app appcontext.Interface, cfg Config) (*Server, error) {
	logger := app.Logger()

	// Set defaults
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = constants.SessionTTL
	}
	if cfg.SessionCleanup == 0 {
		cfg.SessionCleanup = constants.SessionCleanupInterval
	}

	logger.Debug().
		Dur("session_ttl", cfg.SessionTTL).
		Dur("session_cleanup", cfg.SessionCleanup).
		Msg("Creating session registry")

	server := &Server{
		app:       app,
		sessions:  sessions.New(cfg.SessionTTL, cfg.SessionCleanup, logger),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	logger.Debug().Msg("Server instance created")
	return server, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails. On cancellation it drains in-flight requests for up
// to ShutdownTimeout before returning.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info().
			Str("addr", httpServer.Addr).
			Msg("Server listening")

		fmt.Printf("🚀 Starting veritab API server on %s\n", httpServer.Addr)
		fmt.Println("   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")

		fmt.Println("\n🛑 Shutting down veritab API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		s.sessions.Clear()

		s.logger.Info().Msg("Server stopped gracefully")
		fmt.Println("✅ veritab API server stopped gracefully")
		return nil
	}
}

// Sessions returns the server's session registry.
func (s *Server) Sessions() *sessions.Registry {
	return s.sessions
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
