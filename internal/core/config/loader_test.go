package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
platform:
  base_url: https://api.example.com/1.1
database:
  url: postgres://localhost/interact
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Platform.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.Platform.Timeout)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_DB_URL", "postgres://db.internal/interact")
	path := writeConfig(t, `
platform:
  base_url: https://api.example.com/1.1
database:
  url: ${TEST_DB_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.URL != "postgres://db.internal/interact" {
		t.Errorf("Database.URL = %q, env not expanded", cfg.Database.URL)
	}
}

func TestLoadRequiresBaseURL(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a config without platform.base_url")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}
