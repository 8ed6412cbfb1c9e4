package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-ticket-reservation/internal/handler"
	"github.com/iliyamo/concert-ticket-reservation/internal/middleware"
	"github.com/iliyamo/concert-ticket-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a refresh_token body or a bearer token;
	// it does not require the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	auth.GET("/me", a.Me)
	// Only admins may assume another role; the handler re-checks the
	// stored role, so USER tokens are refused there.
	auth.POST("/auth/switch-role", a.SwitchRole)
}

// RegisterConcerts wires the concert management endpoints.  Listing is
// open to any authenticated role; create and delete are ADMIN only.
// listWrap optionally carries the response-cache middleware for the
// list endpoint and may be nil.
func RegisterConcerts(e *echo.Echo, h *handler.ConcertHandler, jwtSecret string, listWrap echo.MiddlewareFunc) {
	g := e.Group("/v1/concerts")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))

	if listWrap != nil {
		g.GET("", h.List, listWrap)
	} else {
		g.GET("", h.List)
	}

	admin := e.Group("/v1/concerts")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.Create)
	admin.DELETE("/:id", h.Delete)
}

// RegisterReservations wires the reservation endpoints.  The write
// path (reserve or cancel) is restricted to the USER role, mirroring
// the rule that admins manage concerts but do not take seats; the
// listing is open to both roles with USER self-scoping enforced in the
// handler.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))

	write := g.Group("")
	write.Use(middleware.RequireRole(model.RoleUser))
	write.POST("", h.ReserveOrCancel)

	read := g.Group("")
	read.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	read.GET("", h.List)
}
