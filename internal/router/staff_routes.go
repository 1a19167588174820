package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/handler"
	"github.com/nightwalk/night-walk/internal/middleware"
)

// RegisterStaff registers the vacancy reporting endpoints.  All routes
// require a valid JWT; any of the three roles may report, the handler then
// checks the caller's relation to the shop (admins always pass, owners for
// their own shops, staff via shop_members).
func RegisterStaff(e *echo.Echo, v *handler.VacancyHandler, jwtSecret string) {
	auth := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "OWNER", "STAFF"),
	}
	// Report the current vacancy status for a shop.  Same /api/v1 prefix
	// as the public GET so the staff app talks to one base path.
	e.POST("/api/v1/vacancy/:shop_id", v.UpdateVacancy, auth...)
	// Recent status changes for a shop, newest first.
	e.GET("/v1/shops/:id/vacancy/history", v.GetVacancyHistory, auth...)
}
