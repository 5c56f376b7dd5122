package api

import (
	"testing"

	"github.com/tablevet/tablevet/pkg/server"
)

func TestVersionDefaults(t *testing.T) {
	// ldflags override these at release build time; a dev build reports
	// placeholder values.
	if version != versionDefault {
		t.Errorf("version = %q, want %q", version, versionDefault)
	}
	if commit != "unknown" {
		t.Errorf("commit = %q, want unknown", commit)
	}
	if date != "unknown" {
		t.Errorf("date = %q, want unknown", date)
	}
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := server.DefaultConfig()
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
}

func TestServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := server.DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.RateLimit <= 0 || cfg.RateLimitBurst <= 0 {
		t.Errorf("rate limit defaults missing: %v burst %d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.ShutdownTimeout <= 0 {
		t.Error("ShutdownTimeout should be positive")
	}
}
