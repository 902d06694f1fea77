// Package router registers the HTTP routes.  Public routes carry no
// authentication; management and staff routes sit behind JWTAuth and a
// role check.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers token endpoints under /v1/auth and the protected
// /v1/me.  Logout accepts either a refresh token or a bearer token and
// needs no middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh) // rotates the refresh token
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated endpoints.  limit guards the
// code lookups against enumeration; cache fronts the event list.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, codes *handler.CodeHandler, limit, cache echo.MiddlewareFunc) {
	e.GET("/v1/events", ev.List, cache)
	// Reading an event page purges expired reservations, so it is never cached.
	e.GET("/v1/events/:slug", ev.GetBySlug)

	e.POST("/v1/events/:id/codes/organizer/validate", codes.ValidateOrganizer, limit)
	e.POST("/v1/events/:id/codes/invitation/validate", codes.ValidateInvitation, limit)
}

// RegisterManager registers event management for ADMIN and CHIEF_ORGANIZER
// and account creation for ADMIN.
func RegisterManager(e *echo.Echo, ev *handler.EventHandler, users *handler.UserHandler, jwtSecret string) {
	manage := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleChiefOrganizer),
	}
	e.POST("/v1/events", ev.Create, manage...)
	e.PUT("/v1/events/:id", ev.Update, manage...)

	e.POST("/v1/users", users.Create,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
}
