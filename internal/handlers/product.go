package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mohitdev/order_management/internal/logging"
	"github.com/mohitdev/order_management/internal/models"
)

type ProductHandler struct {
	DB *gorm.DB
}

// GetProducts returns every product row. Products are created out of band;
// this surface is read-only.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	var items []models.Product
	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch products")
	}

	return c.JSON(http.StatusOK, items)
}
