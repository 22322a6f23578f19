package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:65432" {
		t.Fatalf("default addr: %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxWorkers != 10 {
		t.Fatalf("default workers: %d", cfg.Server.MaxWorkers)
	}
	if cfg.Database.Path != "parking.db" || cfg.Camera.Dir != "static" {
		t.Fatalf("default paths: %q %q", cfg.Database.Path, cfg.Camera.Dir)
	}
	if cfg.Wire.Key != defaultAESKey || cfg.Wire.Nonce != defaultAESNonce {
		t.Fatal("default wire parameters not applied")
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatal("dev secret not applied")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(""); err == nil {
		t.Fatal("Load should fail without JWT_SECRET")
	}
	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with secret: %v", err)
	}
	if cfg.Auth.JWTSecret != "prod-secret" {
		t.Fatalf("secret not picked up: %q", cfg.Auth.JWTSecret)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("MAX_WORKERS", "3")
	t.Setenv("DB_PATH", "/tmp/other.db")

	cfg, err := LoadWithDefaults("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" || cfg.Server.MaxWorkers != 3 || cfg.Database.Path != "/tmp/other.db" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}

	t.Setenv("MAX_WORKERS", "not-a-number")
	if _, err := LoadWithDefaults(""); err == nil {
		t.Fatal("invalid MAX_WORKERS accepted")
	}
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parkscout.toml")
	body := `
[server]
addr = "0.0.0.0:7000"
max_workers = 25

[database]
path = "lot.db"

[auth]
jwt_secret = "file-secret"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:7000" || cfg.Server.MaxWorkers != 25 {
		t.Fatalf("server section not applied: %+v", cfg.Server)
	}
	if cfg.Database.Path != "lot.db" || cfg.Auth.JWTSecret != "file-secret" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing config file accepted")
	}
}

func TestValidateWireParams(t *testing.T) {
	t.Setenv("AES_KEY", "tooshort")
	if _, err := LoadWithDefaults(""); err == nil || !strings.Contains(err.Error(), "AES key") {
		t.Fatalf("invalid key length accepted: %v", err)
	}
	t.Setenv("AES_KEY", defaultAESKey)
	t.Setenv("AES_NONCE", strings.Repeat("n", 17))
	if _, err := LoadWithDefaults(""); err == nil || !strings.Contains(err.Error(), "nonce") {
		t.Fatalf("invalid nonce length accepted: %v", err)
	}
}

func TestStringMasksSecrets(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := cfg.String()
	if strings.Contains(s, cfg.Wire.Key) || strings.Contains(s, cfg.Auth.JWTSecret) {
		t.Fatalf("String leaks secrets: %s", s)
	}
}
