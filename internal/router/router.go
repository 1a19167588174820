package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/nightwalk/night-walk/internal/handler"    // import the handlers that implement business logic
	"github.com/nightwalk/night-walk/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.  Each handler is
	// responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Refresh-access issues a new access token without rotating the refresh
	// token.  Pollers use this to keep a session warm.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates it.  No JWT is required, possession of the refresh token
	// is the credential.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.  The JWTAuth middleware
	// runs before every handler registered on this group.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "OWNER", "STAFF"))
	auth.GET("/me", a.Me)
	// Logout-all revokes every refresh token of the calling user and thus
	// needs an access token rather than a refresh token.
	auth.POST("/auth/logout-all", a.LogoutAll)
}
