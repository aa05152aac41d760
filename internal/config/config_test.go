package config

import (
	"testing"
	"time"
)

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SIGNING_KEY", "")
	t.Setenv("TOKEN_TTL", "")

	cfg := Load()
	if cfg.IsProduction() {
		t.Fatal("default env reported as production")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.JWTSigningKey == "" {
		t.Error("dev run must still have a signing key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SIGNING_KEY", "prod-secret")
	t.Setenv("TOKEN_TTL", "12h")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Error("APP_ENV=production not detected")
	}
	if cfg.JWTSigningKey != "prod-secret" {
		t.Errorf("JWTSigningKey = %q", cfg.JWTSigningKey)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want 12h", cfg.TokenTTL)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("RateLimitPerMin = %d, want 30", cfg.RateLimitPerMin)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")
	t.Setenv("JWT_SIGNING_KEY", "k")

	cfg := Load()
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want fallback 24h", cfg.TokenTTL)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("RateLimitPerMin = %d, want fallback 120", cfg.RateLimitPerMin)
	}
}
