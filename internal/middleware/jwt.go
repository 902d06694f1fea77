// Package middleware holds the Echo middleware shared by the routes:
// bearer authentication, role checks, Redis rate limiting and response
// caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

const principalKey = "principal"

// JWTAuth validates a Bearer access token and stores the caller's
// model.Principal in the context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			p, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// Principal returns the authenticated caller, if any.
func Principal(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(principalKey).(model.Principal)
	return p, ok
}

// WithPrincipal stores p as the authenticated caller.  Tests use it to
// skip token signing.
func WithPrincipal(c echo.Context, p model.Principal) { c.Set(principalKey, p) }
