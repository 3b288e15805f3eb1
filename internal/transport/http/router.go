package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mohitdev/order_management/internal/handlers"
)

type Deps struct {
	HealthHandler  *handlers.HealthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler

	// FrontendOrigin is the single origin allowed to call the API.
	FrontendOrigin string
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{d.FrontendOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/", d.HealthHandler.Check)

	api := e.Group("/api")
	api.GET("/orders", d.OrderHandler.ListOrders)
	api.GET("/products", d.ProductHandler.GetProducts)
	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.POST("/orders/batch", d.OrderHandler.BatchCreateOrders)
	api.PUT("/orders/:id", d.OrderHandler.UpdateOrder)
	api.DELETE("/orders/:id", d.OrderHandler.DeleteOrder)
}
