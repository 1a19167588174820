package config

import (
	"strconv"
	"strings"
	"time"
)

// SignageConfig configures cmd/signage, the badge prefetch loop that feeds
// in-store displays and widget backends.  BaseURL points at the public API;
// ShopIDs is the fixed set of shops the display tracks.
type SignageConfig struct {
	BaseURL        string
	ListenAddr     string
	ShopIDs        []uint64
	PollInterval   time.Duration
	MaxConcurrency int
}

// LoadSignageConfig reads signage settings from environment variables.
// VACANCY_POLL_INTERVAL is shared with the API server so the prefetch
// cadence and the response-cache TTL cap stay in lockstep.
func LoadSignageConfig() SignageConfig {
	return SignageConfig{
		BaseURL:        getenv("SIGNAGE_API_BASE_URL", "http://localhost:8080"),
		ListenAddr:     getenv("SIGNAGE_LISTEN_ADDR", ":8090"),
		ShopIDs:        parseShopIDs(getenv("SIGNAGE_SHOP_IDS", "")),
		PollInterval:   parseDur(getenv("VACANCY_POLL_INTERVAL", "30s")),
		MaxConcurrency: atoi(getenv("SIGNAGE_MAX_CONCURRENCY", "4")),
	}
}

// parseShopIDs splits a comma-separated id list.  Malformed entries are
// skipped rather than fatal: one typo must not blank a whole storefront
// display.
func parseShopIDs(s string) []uint64 {
	var out []uint64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}
