package app

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// LogLevel may be empty here; the precedence logic in logger.go
	// resolves it. Format and output always carry defaults.
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.LogOutput == "" {
		t.Error("LogOutput not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("VERBOSE", "true")
	t.Setenv("OUTPUT", "json")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("VERBOSE environment variable not loaded")
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
}

// TestConfig_BooleanFlags verifies boolean env parsing.
func TestConfig_BooleanFlags(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		check    func(*Config) bool
	}{
		{
			name:     "Quiet",
			envVar:   "QUIET",
			envValue: "true",
			check:    func(c *Config) bool { return c.Quiet },
		},
		{
			name:     "NoColor",
			envVar:   "NO_COLOR",
			envValue: "1",
			check:    func(c *Config) bool { return c.NoColor },
		},
		{
			name:     "Verbose",
			envVar:   "VERBOSE",
			envValue: "true",
			check:    func(c *Config) bool { return c.Verbose },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.envValue)

			config, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}

			if !tt.check(config) {
				t.Errorf("%s = false, want true", tt.name)
			}
		})
	}
}

// TestConfig_ConnectionDefaults verifies database connection resolution.
func TestConfig_ConnectionDefaults(t *testing.T) {
	t.Run("veritab variables", func(t *testing.T) {
		t.Setenv("VERITAB_DRIVER", "postgres")
		t.Setenv("VERITAB_DSN", "postgres://veritab@localhost/ledger")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() failed: %v", err)
		}

		if config.Driver != "postgres" {
			t.Errorf("Driver = %s, want postgres", config.Driver)
		}
		if config.DSN != "postgres://veritab@localhost/ledger" {
			t.Errorf("DSN = %s, want postgres://veritab@localhost/ledger", config.DSN)
		}
	})

	t.Run("DATABASE_URL fallback", func(t *testing.T) {
		t.Setenv("VERITAB_DSN", "")
		t.Setenv("DATABASE_URL", "postgres://app@db/prod")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() failed: %v", err)
		}

		if config.DSN != "postgres://app@db/prod" {
			t.Errorf("DSN = %s, want postgres://app@db/prod", config.DSN)
		}
	})

	t.Run("VERITAB_DSN wins over DATABASE_URL", func(t *testing.T) {
		t.Setenv("VERITAB_DSN", "file:local.db")
		t.Setenv("DATABASE_URL", "postgres://app@db/prod")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() failed: %v", err)
		}

		if config.DSN != "file:local.db" {
			t.Errorf("DSN = %s, want file:local.db", config.DSN)
		}
	})
}

// TestConfig_LoggingOptions verifies logging configuration.
func TestConfig_LoggingOptions(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
	if config.LogOutput != "stdout" {
		t.Errorf("LogOutput = %s, want stdout", config.LogOutput)
	}
}

// TestConfig_UpdateFromFlags verifies flag values override loaded config.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Output: "yaml", LogLevel: "warn"}

	// Empty output and log level leave the loaded values alone.
	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose {
		t.Error("Verbose flag not applied")
	}
	if !config.NoColor {
		t.Error("NoColor flag not applied")
	}
	if config.Output != "yaml" {
		t.Errorf("Output = %s, want yaml (empty flag must not override)", config.Output)
	}
	if config.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn (empty flag must not override)", config.LogLevel)
	}

	// Non-empty values take precedence.
	config.UpdateFromFlags(false, true, false, "json", "debug")
	if config.Verbose {
		t.Error("Verbose flag not cleared")
	}
	if !config.Quiet {
		t.Error("Quiet flag not applied")
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
}

// TestLoadConfigFile verifies explicit config file loading.
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veritab.yaml")
	content := "driver: sqlite\ndsn: file:warehouse.db\noutput: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}

	if config.Driver != "sqlite" {
		t.Errorf("Driver = %s, want sqlite", config.Driver)
	}
	if config.DSN != "file:warehouse.db" {
		t.Errorf("DSN = %s, want file:warehouse.db", config.DSN)
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
}

// TestLoadConfigFile_Missing verifies a named but absent file is an error.
func TestLoadConfigFile_Missing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfigFile() with a missing file should fail")
	}
}
