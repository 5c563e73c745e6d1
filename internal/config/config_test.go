package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(NTSymbolPathEnv, "")
	t.Setenv("SYMSYNC_SYMBOL_PATH", "SRV*/sym*https://example.com")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.SymbolPath != "SRV*/sym*https://example.com" {
		t.Errorf("SymbolPath = %q", cfg.SymbolPath)
	}
	if cfg.Concurrency != 64 {
		t.Errorf("Concurrency = %d, want 64", cfg.Concurrency)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.HTTP.UserAgent == "" {
		t.Error("HTTP.UserAgent should have a default")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(NTSymbolPathEnv, "")
	t.Setenv("SYMSYNC_SYMBOL_PATH", "")

	path := filepath.Join(t.TempDir(), "symsync.yaml")
	content := `symbol_path: "SRV*/cache*s3://symbols/prefix"
concurrency: 16
exclude:
  - "*.exe"
  - "*.dll"
aws:
  region: eu-west-1
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("SYMSYNC_CONCURRENCY", "8")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.SymbolPath != "SRV*/cache*s3://symbols/prefix" {
		t.Errorf("SymbolPath = %q", cfg.SymbolPath)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want the environment override 8", cfg.Concurrency)
	}
	if !reflect.DeepEqual(cfg.Excludes, []string{"*.exe", "*.dll"}) {
		t.Errorf("Excludes = %q", cfg.Excludes)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadNTSymbolPathFallback(t *testing.T) {
	t.Setenv("SYMSYNC_SYMBOL_PATH", "")
	t.Setenv(NTSymbolPathEnv, `SRV*C:\sym*https://msdl.microsoft.com/download/symbols`)

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.SymbolPath != `SRV*C:\sym*https://msdl.microsoft.com/download/symbols` {
		t.Errorf("SymbolPath = %q", cfg.SymbolPath)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing symbol path", func(t *testing.T) {
		t.Setenv("SYMSYNC_SYMBOL_PATH", "")
		t.Setenv(NTSymbolPathEnv, "")
		if _, err := Load(viper.New(), ""); err == nil {
			t.Error("Load() without a symbol path should fail")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Load() with a missing config file should fail")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		SymbolPath:  "SRV*a*b",
		Concurrency: 1,
		Logging:     LoggingConfig{Level: "info", Format: "console"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: true},
		{name: "negative concurrency", mutate: func(c *Config) { c.Concurrency = -1 }, wantErr: true},
		{name: "empty symbol path", mutate: func(c *Config) { c.SymbolPath = "" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
