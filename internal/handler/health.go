package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/marslanding/backend/internal/database"
)

// Version reported by the health endpoints.
const Version = "0.1.0"

// HealthHandler exposes liveness endpoints for load balancers and
// monitoring.
type HealthHandler struct {
	Client *mongo.Client
	Env    string
}

func NewHealthHandler(client *mongo.Client, env string) *HealthHandler {
	return &HealthHandler{Client: client, Env: env}
}

// Health reports basic process liveness without touching dependencies.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "healthy",
		"version":     Version,
		"environment": h.Env,
	})
}

// Detailed additionally pings the store. A failing ping degrades the
// reported status instead of erroring, so monitors still get a body.
func (h *HealthHandler) Detailed(c echo.Context) error {
	status := "healthy"
	dbStatus := "healthy"
	if err := database.Ping(c.Request().Context(), h.Client, 2*time.Second); err != nil {
		status = "unhealthy"
		dbStatus = "unhealthy"
		c.Logger().Errorf("health: store ping failed: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":      status,
		"version":     Version,
		"environment": h.Env,
		"database":    dbStatus,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
