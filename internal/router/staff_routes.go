package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// RegisterStaff registers the sales and door endpoints.  Every staff role
// may sell, redeem and scan.
func RegisterStaff(e *echo.Echo, codes *handler.CodeHandler, co *handler.CheckoutHandler, jwtSecret string) {
	staff := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleChiefOrganizer, model.RoleOrganizer, model.RoleTicketing),
	}

	e.POST("/v1/events/:id/invitations/redeem", codes.Redeem, staff...)
	e.POST("/v1/events/:id/reservations", co.Reserve, staff...)
	e.POST("/v1/reservations/:id/confirm", co.Confirm, staff...)
	e.POST("/v1/tickets/:id/scan", co.Scan, staff...)
}
