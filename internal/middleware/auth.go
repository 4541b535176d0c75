// Package middleware provides shared request processing: bearer-token
// authentication, the superuser gate, host filtering and rate limiting.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/model"
	"github.com/marslanding/backend/internal/store"
)

// principalKey is the context key the resolved account is stored under.
const principalKey = "principal"

// Authenticate returns middleware that resolves the Authorization
// bearer token into a principal and stores it in the request context.
// The wall clock is read here, at the request boundary, and injected
// into validation. Every failure mode produces the same generic 401
// body; only a degraded store is reported differently (503).
func Authenticate(guard *auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			bearer := strings.TrimPrefix(header, "Bearer ")

			principal, err := guard.ResolvePrincipal(c.Request().Context(), bearer, time.Now().UTC())
			if err != nil {
				if errors.Is(err, store.ErrUnavailable) {
					return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "service unavailable"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireSuperuser returns middleware that rejects non-superuser
// principals with 403. It assumes Authenticate ran earlier in the
// chain.
func RequireSuperuser(guard *auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := Principal(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if err := guard.RequireSuperuser(principal); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated account stored by Authenticate.
func Principal(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(principalKey).(*model.User)
	return u, ok
}
