package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/handler"
	"github.com/nightwalk/night-walk/internal/middleware"
)

// RegisterAdmin registers operator-only endpoints under /v1/admin.  The
// ADMIN role is never self-assignable through registration, these routes
// serve the back-office dashboard.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	// Current vacancy status counts across all shops.
	g.GET("/vacancy/stats", h.GetVacancyStats)
	// Audit trail, optional ?action= filter.
	g.GET("/audit-logs", h.ListAuditLogs)
	// Subscription state per shop, written by the billing webhook relay.
	g.GET("/subscriptions", h.ListSubscriptions)
	g.PUT("/subscriptions/:shop_id", h.UpsertSubscription)
}
