package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/veritab/veritab"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Session_Singleton verifies that Session() returns the same instance.
func TestApp_Session_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	s1, err := app.Session()
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}

	s2, err := app.Session()
	if err != nil {
		t.Fatalf("Session() failed on second call: %v", err)
	}

	if s1 != s2 {
		t.Error("Session() returned different instances, expected singleton")
	}
}

// TestApp_Session_ThreadSafe verifies concurrent Session() calls are safe.
func TestApp_Session_ThreadSafe(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	const goroutines = 100
	var wg sync.WaitGroup
	results := make([]*veritab.Session, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s, err := app.Session()
			results[idx] = s
			errs[idx] = err
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Goroutine %d: Session() failed: %v", i, err)
		}
	}

	first := results[0]
	for i, s := range results[1:] {
		if s != first {
			t.Errorf("Goroutine %d got a different session instance", i+1)
		}
	}
}

// TestApp_NewSession verifies that NewSession creates a fresh instance
// each time rather than handing out the default singleton.
func TestApp_NewSession(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	s1, err := app.NewSession(veritab.WithDisplayLimit(5))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	s2, err := app.NewSession(veritab.WithDisplayLimit(5))
	if err != nil {
		t.Fatalf("NewSession() failed on second call: %v", err)
	}

	if s1 == s2 {
		t.Error("NewSession() returned same instance, expected new instance each time")
	}

	def, err := app.Session()
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if s1 == def {
		t.Error("NewSession() returned the default singleton, expected new instance")
	}
}

// TestApp_WithOptions tests the functional options pattern.
func TestApp_WithOptions(t *testing.T) {
	customConfig := &Config{
		Verbose: true,
		Quiet:   false,
		Output:  "json",
	}

	customLogger := zerolog.Nop()

	app, err := New("1.0.0", "test", "2024-01-01", "test",
		WithConfig(customConfig),
		WithLogger(&customLogger),
	)
	if err != nil {
		t.Fatalf("New() with options failed: %v", err)
	}

	if app.Config() != customConfig {
		t.Error("WithConfig() option not applied")
	}
	if app.Logger() != &customLogger {
		t.Error("WithLogger() option not applied")
	}
}

// TestApp_WithSession verifies that an injected session becomes the default.
func TestApp_WithSession(t *testing.T) {
	s, err := veritab.New()
	if err != nil {
		t.Fatalf("veritab.New() failed: %v", err)
	}

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithSession(s))
	if err != nil {
		t.Fatalf("New() with options failed: %v", err)
	}

	got, err := app.Session()
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if got != s {
		t.Error("Session() did not return the injected session")
	}
}

// TestApp_ConfigAccessors verifies the accessors commands read settings through.
func TestApp_ConfigAccessors(t *testing.T) {
	cfg := &Config{
		Output: "json",
		Driver: "sqlite",
		DSN:    "file:ledger.db",
	}

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(cfg))
	if err != nil {
		t.Fatalf("New() with options failed: %v", err)
	}

	if app.OutputFormat() != "json" {
		t.Errorf("OutputFormat() = %s, want json", app.OutputFormat())
	}

	driver, dsn := app.DatabaseDefaults()
	if driver != "sqlite" {
		t.Errorf("DatabaseDefaults() driver = %s, want sqlite", driver)
	}
	if dsn != "file:ledger.db" {
		t.Errorf("DatabaseDefaults() dsn = %s, want file:ledger.db", dsn)
	}
}

// TestApp_Shutdown verifies graceful shutdown drops the default session's tables.
func TestApp_Shutdown(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	s, err := app.Session()
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if _, err := s.LoadSourceReader(strings.NewReader("id\n1\n"), "ledger.csv"); err != nil {
		t.Fatalf("LoadSourceReader() failed: %v", err)
	}

	ctx := context.Background()
	if err := app.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}

	if _, err := s.Source(); err == nil {
		t.Error("Shutdown() left the default session's tables loaded")
	}
}

// TestApp_ShutdownWithoutSession verifies shutdown works when the default
// session was never created.
func TestApp_ShutdownWithoutSession(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx := context.Background()
	if err := app.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

// BenchmarkApp_Session measures default session access.
func BenchmarkApp_Session(b *testing.B) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		b.Fatalf("New() failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := app.Session(); err != nil {
			b.Fatalf("Session() failed: %v", err)
		}
	}
}
