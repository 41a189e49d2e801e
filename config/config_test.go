package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Supabase.Timeout != 10*time.Second {
		t.Errorf("expected default supabase timeout 10s, got %s", cfg.Supabase.Timeout)
	}
	if cfg.RateLimit.MaxRequests != 10 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Supabase.URL != "https://project.supabase.co" {
		t.Errorf("unexpected supabase url %s", cfg.Supabase.URL)
	}
	if cfg.Supabase.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", cfg.Supabase.Timeout)
	}
	if cfg.RateLimit.MaxRequests != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}

	expected := []string{"https://app.example.com", "https://admin.example.com"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, expected) {
		t.Errorf("expected origins %v, got %v", expected, cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SUPABASE_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Supabase.Timeout != 10*time.Second {
		t.Errorf("expected fallback timeout, got %s", cfg.Supabase.Timeout)
	}
}
