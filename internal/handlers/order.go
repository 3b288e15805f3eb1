package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mohitdev/order_management/internal/events"
	"github.com/mohitdev/order_management/internal/logging"
	"github.com/mohitdev/order_management/internal/models"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

const timestampLayout = "2006-01-02 15:04:05"

type OrderHandler struct {
	DB       *gorm.DB
	Producer *events.Producer

	// Location is the fixed zone order timestamps are rendered in,
	// independent of the process-local zone.
	Location *time.Location
}

type createOrderRequest struct {
	OrderDescription string    `json:"orderDescription"`
	CreatedAt        time.Time `json:"createdAt"`
	ProductID        int       `json:"productId"`
	Quantity         int       `json:"quantity"`
}

type createOrderResponse struct {
	Message          string `json:"message"`
	OrderID          int    `json:"orderId"`
	OrderDescription string `json:"orderDescription"`
	ProductID        int    `json:"productId"`
	Quantity         int    `json:"quantity"`
}

type updateOrderRequest struct {
	CreatedAt time.Time `json:"createdAt"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type batchCreateRequest struct {
	Orders []createOrderRequest `json:"orders"`
}

type batchCreateResponse struct {
	Message  string `json:"message"`
	OrderIDs []int  `json:"orderIds"`
}

// orderRow is one row of the orders/products left join.
type orderRow struct {
	OrderID            int       `json:"orderId"`
	OrderDescription   string    `json:"orderDescription"`
	CreatedAt          time.Time `json:"-"`
	ProductID          *int      `json:"productId"`
	ProductName        *string   `json:"productName"`
	ProductDescription *string   `json:"productDescription"`
	Quantity           *int      `json:"quantity"`
}

type orderListItem struct {
	orderRow
	CreatedAt string `json:"createdAt"`
}

func validateLine(productID, quantity int) error {
	if productID <= 0 {
		return fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	return nil
}

// ListOrders returns every order left-joined with its mapped products, so
// an order with no mapping rows still appears once with null product fields.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	var rows []orderRow
	err := h.DB.WithContext(ctx).
		Table("orders AS o").
		Select("o.id AS order_id, o.order_description, o.created_at, p.id AS product_id, p.product_name, p.product_description, m.quantity").
		Joins("LEFT JOIN order_product_map AS m ON m.order_id = o.id").
		Joins("LEFT JOIN products AS p ON p.id = m.product_id").
		Order("o.id").
		Scan(&rows).Error
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch orders")
	}

	out := make([]orderListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, orderListItem{
			orderRow:  r,
			CreatedAt: r.CreatedAt.In(h.Location).Format(timestampLayout),
		})
	}

	return c.JSON(http.StatusOK, out)
}

// CreateOrder inserts the order row and its product mapping in one
// transaction; either both land or neither does.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := validateLine(req.ProductID, req.Quantity); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id or quantity")
	}

	order := models.Order{
		Description: req.OrderDescription,
		CreatedAt:   req.CreatedAt,
	}
	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		mapping := models.OrderProductMap{
			OrderID:   order.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		return tx.Create(&mapping).Error
	})
	if txErr != nil {
		l.Error("create_order_error", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "error adding order")
	}

	h.publish(c, strconv.Itoa(order.ID), map[string]any{
		"type":      "order_created",
		"orderId":   order.ID,
		"productId": req.ProductID,
		"quantity":  req.Quantity,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, createOrderResponse{
		Message:          "Order created and product linked successfully",
		OrderID:          order.ID,
		OrderDescription: req.OrderDescription,
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
	})
}

// BatchCreateOrders inserts one order plus mapping per submitted line item,
// all inside a single transaction. A whole cart either lands or rolls back.
func (h *OrderHandler) BatchCreateOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.batch_create_orders")

	var req batchCreateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("batch_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if len(req.Orders) == 0 {
		l.Warn("batch_create_error", "status", 400, "reason", "empty batch")
		return echo.NewHTTPError(http.StatusBadRequest, "no orders in batch")
	}
	for _, o := range req.Orders {
		if err := validateLine(o.ProductID, o.Quantity); err != nil {
			l.Warn("batch_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product id or quantity")
		}
	}

	orderIDs := make([]int, 0, len(req.Orders))
	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range req.Orders {
			order := models.Order{
				Description: o.OrderDescription,
				CreatedAt:   o.CreatedAt,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			mapping := models.OrderProductMap{
				OrderID:   order.ID,
				ProductID: o.ProductID,
				Quantity:  o.Quantity,
			}
			if err := tx.Create(&mapping).Error; err != nil {
				return err
			}
			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	})
	if txErr != nil {
		l.Error("batch_create_error", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "error adding orders")
	}

	for i, id := range orderIDs {
		h.publish(c, strconv.Itoa(id), map[string]any{
			"type":      "order_created",
			"orderId":   id,
			"productId": req.Orders[i].ProductID,
			"quantity":  req.Orders[i].Quantity,
		})
	}

	l.Info("batch_create_success", "count", len(orderIDs))
	return c.JSON(http.StatusCreated, batchCreateResponse{
		Message:  "Orders created successfully",
		OrderIDs: orderIDs,
	})
}

// UpdateOrder rewrites the order's timestamp and upserts the quantity for
// the (order, product) pair through the unique index, in one transaction.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := validateLine(req.ProductID, req.Quantity); err != nil {
		l.Warn("update_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id or quantity")
	}

	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("id = ?", id).
			Update("created_at", req.CreatedAt).Error; err != nil {
			return err
		}

		mapping := models.OrderProductMap{
			OrderID:   id,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{"quantity": req.Quantity}),
		}).Create(&mapping).Error
	})
	if txErr != nil {
		l.Error("update_order_error", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "error updating order")
	}

	h.publish(c, strconv.Itoa(id), map[string]any{
		"type":      "order_updated",
		"orderId":   id,
		"productId": req.ProductID,
		"quantity":  req.Quantity,
	})

	l.Info("update_order_success", "order_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "Order updated successfully"})
}

// DeleteOrder removes the mapping rows and the order row together. A
// missing order rolls the whole sequence back and yields 404.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	txErr := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProductMap{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrNotFound) {
			l.Warn("delete_order_error", "status", 404, "order_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("delete_order_error", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "error deleting order")
	}

	h.publish(c, strconv.Itoa(id), map[string]any{
		"type":    "order_deleted",
		"orderId": id,
	})

	l.Info("delete_order_success", "order_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx := c.Request().Context()
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
