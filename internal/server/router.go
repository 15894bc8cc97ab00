package server

import (
	"net/http"
	"strings"

	"github.com/veritab/veritab/internal/server/handlers"
	"github.com/veritab/veritab/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	// Create handlers instance
	h := handlers.New(s.app, s.sessions, s.logger, s.startTime)

	// Register routes
	s.registerRoutes(mux, h)

	// Apply middleware chain
	handler := s.applyMiddleware(mux)

	return handler
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Session collection
	mux.HandleFunc(prefix+"/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.HandleCreateSession(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Session instance and sub-resources
	mux.HandleFunc(prefix+"/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path[len(prefix+"/sessions/"):]
		parts := splitPath(path)

		if len(parts) == 0 {
			http.Error(w, "Session ID required", http.StatusBadRequest)
			return
		}

		sessionID := parts[0]

		if len(parts) == 1 {
			switch r.Method {
			case http.MethodGet:
				h.HandleGetSession(w, r, sessionID)
			case http.MethodDelete:
				h.HandleDeleteSession(w, r, sessionID)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		if len(parts) == 2 {
			switch parts[1] {
			case "source":
				if r.Method == http.MethodPost {
					h.HandleLoadSource(w, r, sessionID)
					return
				}
			case "target":
				if r.Method == http.MethodPost {
					h.HandleLoadTarget(w, r, sessionID)
					return
				}
			case "preview":
				if r.Method == http.MethodGet {
					h.HandlePreview(w, r, sessionID)
					return
				}
			case "compare":
				if r.Method == http.MethodPost {
					h.HandleCompare(w, r, sessionID)
					return
				}
			case "export":
				if r.Method == http.MethodGet {
					h.HandleExport(w, r, sessionID)
					return
				}
			default:
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, s.logger)
		handler = middleware.RateLimit(rateLimiter)(handler)
	}

	// Authentication (if enabled)
	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.HeaderName = cfg.AuthHeader
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"}
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
