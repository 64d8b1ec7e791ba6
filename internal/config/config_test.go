package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "portal")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "campustix")
}

func TestNewDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Fatalf("server defaults: %+v", cfg.Server)
	}
	if cfg.Postgres.Port != 5432 || cfg.Postgres.SSLMode != "disable" {
		t.Fatalf("postgres defaults: %+v", cfg.Postgres)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr = %q", cfg.Redis.Addr)
	}
}

func TestNewMissingCredentials(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")

	if _, err := New(); err == nil {
		t.Fatal("expected error for missing postgres credentials")
	}
}

func TestNewBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "not-a-number")

	if _, err := New(); err == nil {
		t.Fatal("expected error for a non-numeric SERVER_PORT")
	}
}

func TestNewSMTPNeverRequiresCredentials(t *testing.T) {
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASSWORD", "")

	cfg, err := NewSMTP()
	if err != nil {
		t.Fatalf("NewSMTP: %v", err)
	}
	if cfg.Port != 587 {
		t.Fatalf("port = %d, want 587", cfg.Port)
	}
}
