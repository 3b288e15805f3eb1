package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mohitdev/order_management/internal/logging"
)

type HealthHandler struct {
	DB *gorm.DB
}

// Check verifies database connectivity with a trivial round trip.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()

	var one int
	if err := h.DB.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		logging.FromContext(ctx).Error("health check failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "database connection failed",
		})
	}

	return c.String(http.StatusOK, "Database is connected and server is running!")
}
