package orderclient

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mohitdev/order_management/internal/handlers"
	"github.com/mohitdev/order_management/internal/models"
	httpserver "github.com/mohitdev/order_management/internal/transport/http"
)

func newTestServer(t *testing.T) (*Client, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderProductMap{}))

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		HealthHandler:  &handlers.HealthHandler{DB: db},
		ProductHandler: &handlers.ProductHandler{DB: db},
		OrderHandler:   &handlers.OrderHandler{DB: db, Location: time.UTC},
		FrontendOrigin: "http://localhost:5173",
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL), db
}

func TestClientOrderLifecycle(t *testing.T) {
	client, db := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Product{Name: "laptop", Description: "a laptop"}).Error)

	products, err := client.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "laptop", products[0].Name)

	created, err := client.CreateOrder(ctx, CreateOrderRequest{
		OrderDescription: "first order",
		CreatedAt:        time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		ProductID:        products[0].ID,
		Quantity:         3,
	})
	require.NoError(t, err)
	require.NotZero(t, created.OrderID)

	require.NoError(t, client.UpdateOrder(ctx, created.OrderID, UpdateOrderRequest{
		CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		ProductID: products[0].ID,
		Quantity:  7,
	}))

	orders, err := client.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, created.OrderID, orders[0].OrderID)
	require.Equal(t, "2024-05-02 09:00:00", orders[0].CreatedAt)
	require.NotNil(t, orders[0].Quantity)
	require.Equal(t, 7, *orders[0].Quantity)

	require.NoError(t, client.DeleteOrder(ctx, created.OrderID))

	orders, err = client.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	// Gone means gone: a second delete surfaces the 404.
	require.Error(t, client.DeleteOrder(ctx, created.OrderID))
}

func TestClientCreateOrderRejected(t *testing.T) {
	client, _ := newTestServer(t)

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		OrderDescription: "bad",
		CreatedAt:        time.Now().UTC(),
		ProductID:        1,
		Quantity:         0,
	})
	require.Error(t, err)
}
