package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPEN_DATA_TIMEOUT", "")
	t.Setenv("OPEN_DATA_CORE_TIMEOUT", "")
	t.Setenv("CORS_ORIGINS", "https://example.com, https://www.example.com")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetOpenDataTimeout() != 3500*time.Millisecond {
		t.Fatalf("expected default timeout 3.5s, got %s", cfg.GetOpenDataTimeout())
	}
	if cfg.GetOpenDataCoreTimeout() != 6500*time.Millisecond {
		t.Fatalf("expected core timeout 6.5s, got %s", cfg.GetOpenDataCoreTimeout())
	}
	if cfg.GetOpenDataPortfolioTimeout() != 8*time.Second {
		t.Fatalf("expected portfolio timeout 8s, got %s", cfg.GetOpenDataPortfolioTimeout())
	}
	if len(cfg.GetCORSOrigins()) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.GetCORSOrigins())
	}
	if cfg.IsRedisEnabled() || cfg.IsDatabaseEnabled() {
		t.Fatalf("expected redis and database disabled without URLs")
	}
}

func TestLoadWildcardOriginEnablesAllowAll(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_ALL", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatalf("expected wildcard origin to enable allow-all")
	}
}

func TestLoadRejectsCoreTimeoutBelowDefault(t *testing.T) {
	t.Setenv("OPEN_DATA_TIMEOUT", "5s")
	t.Setenv("OPEN_DATA_CORE_TIMEOUT", "2s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when core timeout is shorter than default timeout")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	if got := durationOr("soon", time.Second); got != time.Second {
		t.Fatalf("expected fallback duration, got %s", got)
	}
	if got := positiveIntOr("-3", 7); got != 7 {
		t.Fatalf("expected fallback int, got %d", got)
	}
}
