package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_CAPACITY", "")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "")
	t.Setenv("RATE_LIMIT_TTL", "")
	t.Setenv("RATE_LIMIT_PREFIX", "")

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled || cfg.Capacity != 60 || cfg.RefillTokens != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RefillInterval != time.Second || cfg.TTL != 10*time.Minute {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.Prefix != "rl" {
		t.Errorf("Prefix = %q, want rl", cfg.Prefix)
	}
}

func TestLoadRateLimitConfigClamping(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamped to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want clamped to 1", cfg.RefillTokens)
	}
	// TTL shorter than five refill intervals gets stretched so a bucket
	// cannot expire mid-refill.
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %v, want 10s", cfg.TTL)
	}
}

func TestEnvBoolParsing(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"1", true}, {"true", true}, {"on", true},
		{"0", false}, {"off", false}, {"no", false},
		{"garbage", true}, {"", true},
	}
	for _, tc := range cases {
		t.Setenv("RATE_LIMIT_ENABLED", tc.raw)
		if got := envBool("RATE_LIMIT_ENABLED", true); got != tc.want {
			t.Errorf("envBool(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
