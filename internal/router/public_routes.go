package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nightwalk/night-walk/internal/config"
	"github.com/nightwalk/night-walk/internal/handler"
	"github.com/nightwalk/night-walk/internal/middleware"
)

// RegisterPublic registers unauthenticated browse endpoints.  These routes
// return sanitized data for shops, job postings and vacancy badges and apply
// no JWT or role middleware.
//
// The vacancy badge endpoint is the hot path: every venue page polls it on
// an interval, so it sits behind the shared Redis response cache (short TTL,
// X-Cache HIT/MISS) and a per-client token bucket.  When rdb is nil the
// endpoint is registered without either, which keeps local development
// working with no Redis around.  pollInterval caps the cache TTL so a
// cached badge never outlives one client poll.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, v *handler.VacancyHandler, rdb *redis.Client, pollInterval time.Duration) {
	if rdb == nil {
		e.GET("/v1/shops", p.GetPublicShops)
		e.GET("/v1/shops/:id", p.GetPublicShop)
		e.GET("/v1/jobs", p.GetPublicJobs)
		// The badge lives under /api/v1: embed widgets hardcode that prefix.
		e.GET("/api/v1/vacancy/:shop_id", v.GetVacancy)
		return
	}

	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb, pollInterval)
	limited := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Shop directory: published shops only, optional ?area= filter.
	e.GET("/v1/shops", p.GetPublicShops, cached)
	// Shop detail with vacancy badge and active job postings embedded.
	e.GET("/v1/shops/:id", p.GetPublicShop, cached)
	// Job board across all published shops.
	e.GET("/v1/jobs", p.GetPublicJobs, cached)
	// The badge lives under /api/v1: embed widgets hardcode that prefix.
	e.GET("/api/v1/vacancy/:shop_id", v.GetVacancy, limited, cached)
}
