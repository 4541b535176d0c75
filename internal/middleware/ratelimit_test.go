package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/marslanding/backend/internal/config"
)

func TestTokenBucketNoRedisIsNoOp(t *testing.T) {
	e := echo.New()
	cfg := config.LoadRateLimitConfig()
	e.Use(NewTokenBucket(cfg, nil))
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// Without a Redis client the limiter must never block a request.
	for i := 0; i < 3*cfg.Capacity; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestTokenBucketDisabledIsNoOp(t *testing.T) {
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil))
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
