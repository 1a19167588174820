package config

import (
	"testing"
	"time"
)

func TestParseShopIDs(t *testing.T) {
	got := parseShopIDs(" 1, 2,abc,0,3,,")
	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseShopIDs_Empty(t *testing.T) {
	if got := parseShopIDs(""); len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestLoadSignageConfig_Defaults(t *testing.T) {
	t.Setenv("SIGNAGE_API_BASE_URL", "")
	t.Setenv("SIGNAGE_LISTEN_ADDR", "")
	t.Setenv("SIGNAGE_SHOP_IDS", "7,8")
	t.Setenv("VACANCY_POLL_INTERVAL", "")
	t.Setenv("SIGNAGE_MAX_CONCURRENCY", "")

	cfg := LoadSignageConfig()
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.ListenAddr != ":8090" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
	if len(cfg.ShopIDs) != 2 || cfg.ShopIDs[0] != 7 || cfg.ShopIDs[1] != 8 {
		t.Fatalf("ShopIDs = %v", cfg.ShopIDs)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.MaxConcurrency != 4 {
		t.Fatalf("MaxConcurrency = %d", cfg.MaxConcurrency)
	}
}

func TestLoadSignageConfig_SharedPollInterval(t *testing.T) {
	t.Setenv("SIGNAGE_SHOP_IDS", "1")
	t.Setenv("VACANCY_POLL_INTERVAL", "10s")
	if cfg := LoadSignageConfig(); cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
}
