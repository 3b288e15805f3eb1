package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a typed HTTP client for the order service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(serviceURL string) *Client {
	return &Client{
		baseURL: serviceURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type Product struct {
	ID          int    `json:"productId"`
	Name        string `json:"productName"`
	Description string `json:"productDescription"`
}

type OrderRow struct {
	OrderID            int     `json:"orderId"`
	OrderDescription   string  `json:"orderDescription"`
	CreatedAt          string  `json:"createdAt"`
	ProductID          *int    `json:"productId"`
	ProductName        *string `json:"productName"`
	ProductDescription *string `json:"productDescription"`
	Quantity           *int    `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderDescription string    `json:"orderDescription"`
	CreatedAt        time.Time `json:"createdAt"`
	ProductID        int       `json:"productId"`
	Quantity         int       `json:"quantity"`
}

type CreateOrderResponse struct {
	Message          string `json:"message"`
	OrderID          int    `json:"orderId"`
	OrderDescription string `json:"orderDescription"`
	ProductID        int    `json:"productId"`
	Quantity         int    `json:"quantity"`
}

type BatchCreateRequest struct {
	Orders []CreateOrderRequest `json:"orders"`
}

type BatchCreateResponse struct {
	Message  string `json:"message"`
	OrderIDs []int  `json:"orderIds"`
}

type UpdateOrderRequest struct {
	CreatedAt time.Time `json:"createdAt"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrdersBatch(ctx context.Context, req BatchCreateRequest) (*BatchCreateResponse, error) {
	var out BatchCreateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders/batch", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]OrderRow, error) {
	var out []OrderRow
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, orderID int, req UpdateOrderRequest) error {
	path := fmt.Sprintf("/api/orders/%d", orderID)
	return c.doJSON(ctx, http.MethodPut, path, req, nil, http.StatusOK)
}

func (c *Client) DeleteOrder(ctx context.Context, orderID int) error {
	path := fmt.Sprintf("/api/orders/%d", orderID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusOK)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s failed with status: %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
