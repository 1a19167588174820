package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/handler"
	"github.com/nightwalk/night-walk/internal/middleware"
)

// RegisterOwner registers owner-scoped endpoints under /v1.  All routes
// require a valid JWT and the OWNER role (admins pass too).  Owners manage
// their shops and the job postings attached to them.
func RegisterOwner(e *echo.Echo, h *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "ADMIN"),
	)

	// Shop management.
	g.POST("/shops", h.CreateShop)
	g.GET("/my-shops", h.ListMyShops)
	g.PUT("/shops/:id", h.UpdateShop)
	g.PATCH("/shops/:id/published", h.ToggleShopPublished)
	g.DELETE("/shops/:id", h.DeleteShop)

	// Job postings, scoped to a shop the caller owns.
	g.POST("/shops/:id/jobs", h.CreateJob)
	g.GET("/shops/:id/jobs", h.ListShopJobs)
	g.PUT("/jobs/:id", h.UpdateJob)
	g.PATCH("/jobs/:id", h.UpdateJob)
	g.DELETE("/jobs/:id", h.DeleteJob)
}
