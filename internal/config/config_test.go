package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSQLiteDefaults(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage:
  path: storage/hostel.db
http_server:
  address: localhost:8080
auth:
  jwt_secret: test-secret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite3 {
		t.Errorf("Driver = %q, want %q", cfg.Storage.Driver, DriverSQLite3)
	}
	if cfg.HTTPServer.RequestTimeout != 8*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.HTTPServer.RequestTimeout)
	}
	if cfg.HTTPServer.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d", cfg.HTTPServer.MaxBodyBytes)
	}
	if cfg.Auth.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	path := writeConfig(t, `
env: prod
storage:
  driver: postgres
  postgres:
    host: db.internal
    database: hostel
http_server:
  address: :8080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, want from-env", cfg.Auth.JWTSecret)
	}
	if len(cfg.HTTPServer.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.HTTPServer.AllowedOrigins)
	}
	dsn := cfg.Storage.Postgres.DSN()
	if !strings.HasPrefix(dsn, "postgres://postgres:@db.internal:5432/hostel") {
		t.Errorf("DSN = %q", dsn)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"missing secret": `
env: dev
storage:
  path: x.db
http_server:
  address: :8080
`,
		"sqlite without path": `
env: dev
http_server:
  address: :8080
auth:
  jwt_secret: s
`,
		"unknown driver": `
env: dev
storage:
  driver: mysql
http_server:
  address: :8080
auth:
  jwt_secret: s
`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
