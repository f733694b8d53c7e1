package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "inventory")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "inventory")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BCRYPT_COST", "4")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "")
	t.Setenv("CORS_ORIGIN", "")

	cfg := Load()
	if cfg.AccessTTLMin != 30 {
		t.Errorf("AccessTTLMin = %d, want default 30", cfg.AccessTTLMin)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("CORSOrigin = %q, want default", cfg.CORSOrigin)
	}
	if cfg.BcryptCost != 4 || cfg.Port != "8080" {
		t.Errorf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "45")
	t.Setenv("CORS_ORIGIN", "https://inventory.example.com")

	cfg := Load()
	if cfg.AccessTTLMin != 45 {
		t.Errorf("AccessTTLMin = %d, want 45", cfg.AccessTTLMin)
	}
	if cfg.CORSOrigin != "https://inventory.example.com" {
		t.Errorf("CORSOrigin = %q", cfg.CORSOrigin)
	}
}
