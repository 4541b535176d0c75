// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/config"
	"github.com/marslanding/backend/internal/handler"
	"github.com/marslanding/backend/internal/middleware"
)

// Register sets up all routes. Credential endpoints sit behind the
// Redis rate limiter; everything under /api/v1/users except
// registration requires a resolved principal.
func Register(
	e *echo.Echo,
	cfg config.Config,
	a *handler.AuthHandler,
	u *handler.UserHandler,
	h *handler.HealthHandler,
	guard *auth.Guard,
	rdb *redis.Client,
) {
	e.Use(middleware.AllowedHosts(cfg.AllowedHosts))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	e.GET("/health", h.Health)
	e.GET("/health/detailed", h.Detailed)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	authGroup := e.Group("/api/v1/auth", limiter)
	authGroup.POST("/login", a.Login)
	authGroup.POST("/refresh", a.Refresh)

	users := e.Group("/api/v1/users")
	users.POST("", u.Create) // open registration

	authed := users.Group("", middleware.Authenticate(guard))
	authed.GET("/me", u.Me)
	authed.PUT("/me", u.UpdateMe)
	authed.GET("/:id", u.GetByID)

	super := authed.Group("", middleware.RequireSuperuser(guard))
	super.GET("", u.List)
	super.DELETE("/:id", u.Delete)
}
