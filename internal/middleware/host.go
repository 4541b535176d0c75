package middleware

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AllowedHosts returns middleware that rejects requests whose Host
// header is not in the allow list. An empty list allows everything.
// Ports are stripped before comparison so "localhost" matches
// "localhost:8000".
func AllowedHosts(hosts []string) echo.MiddlewareFunc {
	if len(hosts) == 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[h] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host := c.Request().Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if !allowed[host] {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid host header"})
			}
			return next(c)
		}
	}
}
