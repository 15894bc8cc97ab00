package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func corsHandler(config CORSConfig) http.Handler {
	return CORS(config)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

// TestCORS_AllowAll verifies the wildcard origin mode.
func TestCORS_AllowAll(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowAll = true

	req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
	req.Header.Set("Origin", "https://recon.example.com")
	w := httptest.NewRecorder()
	corsHandler(config).ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}

// TestCORS_AllowedOrigins verifies origin matching and the Vary header.
func TestCORS_AllowedOrigins(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://recon.example.com"}

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
		req.Header.Set("Origin", "https://recon.example.com")
		w := httptest.NewRecorder()
		corsHandler(config).ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://recon.example.com" {
			t.Errorf("expected origin echoed, got %q", got)
		}
		if got := w.Header().Get("Vary"); got != "Origin" {
			t.Errorf("expected Vary: Origin, got %q", got)
		}
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		corsHandler(config).ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no allow-origin header, got %q", got)
		}
	})
}

// TestCORS_Preflight verifies OPTIONS requests short-circuit with headers.
func TestCORS_Preflight(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowAll = true

	handlerCalled := false
	handler := CORS(config)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "https://recon.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if handlerCalled {
		t.Error("expected preflight to short-circuit before the handler")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
		t.Errorf("expected DELETE in allowed methods, got %q", got)
	}
}

// TestCORS_ExposesContentDisposition verifies browsers can read the
// workbook download filename.
func TestCORS_ExposesContentDisposition(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowAll = true

	req := httptest.NewRequest("GET", "/api/v1/sessions/abc/export", nil)
	w := httptest.NewRecorder()
	corsHandler(config).ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Content-Disposition") {
		t.Errorf("expected Content-Disposition exposed, got %q", got)
	}
}
