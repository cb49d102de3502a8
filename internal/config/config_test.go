package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Name != "incident-response-service" {
		t.Errorf("unexpected app name %q", cfg.App.Name)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("unexpected addr %q", cfg.App.Addr())
	}
	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Errorf("unexpected token ttl %d", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Notification.QueueKey != "notifications:email" {
		t.Errorf("unexpected queue key %q", cfg.Notification.QueueKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("NOTIFY_CONSUME_TIMEOUT_SECONDS", "2")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("expected port override, got %q", cfg.App.Port)
	}
	if cfg.Auth.AccessTokenTTLMinutes != 5 {
		t.Errorf("expected ttl override, got %d", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Notification.ConsumeTimeout() != 2*time.Second {
		t.Errorf("expected 2s consume timeout, got %v", cfg.Notification.ConsumeTimeout())
	}
	if cfg.Postgres.RunMigrations {
		t.Error("expected migrations disabled")
	}
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}
