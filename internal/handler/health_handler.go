package handler

import (
	"context"
	"net/http"
	"time"

	"farmmall/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DBへのping（*sql.DB）
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthStatus struct {
	Status string `json:"status"`
}

func (h *HealthHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/health", h.health)
}

func (h *HealthHandler) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		middleware.LoggerFrom(c).Error("health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, Response{
			Code:    http.StatusServiceUnavailable,
			Message: "database unavailable",
			Data:    healthStatus{Status: "down"},
		})
	}
	return ok(c, healthStatus{Status: "ok"})
}
