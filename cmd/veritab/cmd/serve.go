package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritab/veritab/internal/appcontext"
	"github.com/veritab/veritab/internal/server"
)

// serveFlags holds the serve command's flags.
type serveFlags struct {
	host         string
	port         int
	prefix       string
	cors         bool
	corsOrigins  []string
	auth         bool
	authHeader   string
	rateLimit    int
	sessionTTL   time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
}

// NewServeCommand creates the serve command with app dependencies.
func NewServeCommand(app appcontext.Interface) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reconciliation session API over HTTP",
		Long: `Start an HTTP JSON API for interactive reconciliation sessions.

A client creates a session, uploads the source table, loads the target
from a second upload or a SQL query, previews either side, runs the
comparison, and downloads the full report as an .xlsx workbook. Idle
sessions expire after a TTL so abandoned uploads do not pile up.

Features:
  - Session lifecycle endpoints under /api/v1/sessions
  - Multipart file uploads (.csv, .xlsx, .xlsm)
  - SQL targets via sqlite, postgres, or sqlserver drivers
  - Rate limiting (requests per minute per IP)
  - API key authentication (optional)
  - CORS support for browser clients
  - Request logging, panic recovery, and graceful shutdown`,
		Example: `  # Start on default port 8080
  veritab serve

  # Start on a custom port with authentication
  veritab serve --port 3000 --auth

  # Allow a specific browser origin
  veritab serve --cors-origins "https://recon.example.com"

  # Full configuration
  veritab serve --port 8080 --cors --auth --rate-limit 60`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, app, flags)
		},
	}

	defaults := server.DefaultConfig()

	cmd.Flags().StringVar(&flags.host, "host", defaults.Host, "Bind address")
	cmd.Flags().IntVarP(&flags.port, "port", "p", defaults.Port, "Server port")
	cmd.Flags().StringVar(&flags.prefix, "prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().BoolVar(&flags.cors, "cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSliceVar(&flags.corsOrigins, "cors-origins", []string{},
		"Allowed CORS origins (comma-separated)")

	cmd.Flags().BoolVar(&flags.auth, "auth", false, "Enable API key authentication")
	cmd.Flags().StringVar(&flags.authHeader, "auth-header", defaults.AuthHeader,
		"Authentication header name")

	cmd.Flags().IntVar(&flags.rateLimit, "rate-limit", defaults.RateLimit,
		"Requests per minute per IP (0 to disable)")
	cmd.Flags().DurationVar(&flags.sessionTTL, "session-ttl", defaults.SessionTTL,
		"How long idle sessions are retained")

	cmd.Flags().DurationVar(&flags.readTimeout, "read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().DurationVar(&flags.writeTimeout, "write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().DurationVar(&flags.idleTimeout, "idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

func runServe(cmd *cobra.Command, app appcontext.Interface, flags *serveFlags) error {
	cfg := server.DefaultConfig()
	cfg.Host = flags.host
	cfg.Port = flags.port
	cfg.PathPrefix = flags.prefix
	cfg.CORSEnabled = flags.cors || len(flags.corsOrigins) > 0
	cfg.CORSOrigins = flags.corsOrigins
	cfg.AuthEnabled = flags.auth
	cfg.AuthHeader = flags.authHeader
	cfg.RateLimit = flags.rateLimit
	cfg.SessionTTL = flags.sessionTTL
	cfg.ReadTimeout = flags.readTimeout
	cfg.WriteTimeout = flags.writeTimeout
	cfg.IdleTimeout = flags.idleTimeout

	// Environment overrides for container deployments.
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		port, err := parsePort(envPort)
		if err != nil {
			return err
		}
		cfg.Port = port
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	app.Logger().Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return err
	}

	return srv.Run(cmd.Context())
}

// parsePort validates a port string from the environment.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}
