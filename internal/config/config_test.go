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
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Fatalf("request timeout = %v, want 30s", cfg.App.RequestTimeout())
	}
	if cfg.RateLimit.Window() != 15*time.Minute {
		t.Fatalf("rate-limit window = %v, want 15m", cfg.RateLimit.Window())
	}
	if cfg.Redis.RecommendTTL() != 60*time.Second {
		t.Fatalf("recommend TTL = %v, want 60s", cfg.Redis.RecommendTTL())
	}
}

func TestLoadRecommendTTLOverride(t *testing.T) {
	t.Setenv("RECOMMEND_CACHE_TTL_SECONDS", "120")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.RecommendTTL() != 2*time.Minute {
		t.Fatalf("recommend TTL = %v, want 2m", cfg.Redis.RecommendTTL())
	}
}
