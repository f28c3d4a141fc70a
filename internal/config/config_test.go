package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WORKING_HOURS_START", "")
	t.Setenv("WORKING_HOURS_END", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.WorkingHoursStart != "09:00" || cfg.WorkingHoursEnd != "21:00" {
		t.Fatalf("expected default working hours, got %s-%s", cfg.WorkingHoursStart, cfg.WorkingHoursEnd)
	}
	if cfg.SlotDurationMinutes != 15 {
		t.Fatalf("expected default slot duration, got %d", cfg.SlotDurationMinutes)
	}
	if cfg.LockTimeout != 5*time.Second {
		t.Fatalf("expected default lock timeout, got %s", cfg.LockTimeout)
	}
	if cfg.UseMemoryRepo {
		t.Fatal("expected memory repo disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("USE_MEMORY_REPO", "true")
	t.Setenv("WORKING_HOURS_START", "08:00")
	t.Setenv("WORKING_HOURS_END", "18:00")
	t.Setenv("SLOT_DURATION_MINUTES", "30")
	t.Setenv("QUEUE_LOCK_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected database url override, got %s", cfg.DatabaseURL)
	}
	if !cfg.UseMemoryRepo {
		t.Fatal("expected memory repo enabled")
	}
	if cfg.WorkingHoursStart != "08:00" || cfg.WorkingHoursEnd != "18:00" {
		t.Fatalf("expected working hours override, got %s-%s", cfg.WorkingHoursStart, cfg.WorkingHoursEnd)
	}
	if cfg.SlotDurationMinutes != 30 {
		t.Fatalf("expected slot duration override, got %d", cfg.SlotDurationMinutes)
	}
	if cfg.LockTimeout != 2*time.Second {
		t.Fatalf("expected lock timeout override, got %s", cfg.LockTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}
