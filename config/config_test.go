package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("A missing config file should fall back to defaults: %v", err)
	}

	if cfg.Server.HTTPAddress != ":8080" {
		t.Errorf("Expected default http address :8080, got %q", cfg.Server.HTTPAddress)
	}
	if cfg.Persistence.Backend != "file" {
		t.Errorf("Expected default backend file, got %q", cfg.Persistence.Backend)
	}
	if cfg.Persistence.AutosaveSeconds != 10 {
		t.Errorf("Expected default autosave 10s, got %d", cfg.Persistence.AutosaveSeconds)
	}
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	raw := `
server:
  http_address: ":9999"
persistence:
  backend: postgres
  postgres:
    host: db.internal
    port: 5433
    user: room
    dbname: roomserver
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.HTTPAddress != ":9999" {
		t.Errorf("Expected http address :9999, got %q", cfg.Server.HTTPAddress)
	}
	if cfg.Persistence.Backend != "postgres" {
		t.Errorf("Expected backend postgres, got %q", cfg.Persistence.Backend)
	}
	if cfg.Persistence.Postgres.Host != "db.internal" || cfg.Persistence.Postgres.Port != 5433 {
		t.Errorf("Postgres settings not applied: %+v", cfg.Persistence.Postgres)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.MetricsAddress != ":9100" {
		t.Errorf("Expected default metrics address, got %q", cfg.Server.MetricsAddress)
	}
}
