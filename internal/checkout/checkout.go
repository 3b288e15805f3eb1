package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mohitdev/order_management/internal/cart"
	"github.com/mohitdev/order_management/pkg/orderclient"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNothingSelected = errors.New("no products selected")
)

// Flow turns cart contents into order-creation requests.
type Flow struct {
	Client *orderclient.Client
	Cart   *cart.Manager
	Log    *slog.Logger

	now func() time.Time
}

func New(client *orderclient.Client, c *cart.Manager, log *slog.Logger) *Flow {
	return &Flow{
		Client: client,
		Cart:   c,
		Log:    log,
		now:    time.Now,
	}
}

// Confirmation is the snapshot handed to the confirmation view after a
// successful checkout.
type Confirmation struct {
	Items    []cart.LineItem
	OrderIDs []int
}

// Checkout submits the whole cart as one batched request, so the server
// lands every line item atomically. On success the cart and the held
// customer details are cleared.
func (f *Flow) Checkout(ctx context.Context) (*Confirmation, error) {
	items := f.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req := orderclient.BatchCreateRequest{
		Orders: make([]orderclient.CreateOrderRequest, 0, len(items)),
	}
	for _, it := range items {
		req.Orders = append(req.Orders, orderclient.CreateOrderRequest{
			OrderDescription: it.OrderDescription,
			CreatedAt:        it.AddedAt,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
		})
	}

	resp, err := f.Client.CreateOrdersBatch(ctx, req)
	if err != nil {
		f.Log.Error("checkout failed", "items", len(items), "error", err)
		return nil, err
	}

	if err := f.Cart.Clear(); err != nil {
		f.Log.Error("cart clear failed after checkout", "error", err)
	}

	f.Log.Info("checkout complete", "orders", len(resp.OrderIDs))
	return &Confirmation{Items: items, OrderIDs: resp.OrderIDs}, nil
}

// SubmitSelected is the order-review path: one create request per selected
// product, issued concurrently with no ordering guarantee. Failures are not
// retried and already-created orders are not rolled back.
func (f *Flow) SubmitSelected(ctx context.Context, productIDs []int) error {
	items := f.Cart.Items()

	selected := make([]cart.LineItem, 0, len(productIDs))
	for _, id := range productIDs {
		for _, it := range items {
			if it.ProductID == id {
				selected = append(selected, it)
				break
			}
		}
	}
	if len(selected) == 0 {
		return ErrNothingSelected
	}

	createdAt := f.now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	for _, it := range selected {
		it := it
		g.Go(func() error {
			_, err := f.Client.CreateOrder(gctx, orderclient.CreateOrderRequest{
				OrderDescription: "New Order",
				CreatedAt:        createdAt,
				ProductID:        it.ProductID,
				Quantity:         it.Quantity,
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		f.Log.Error("selected submission failed", "selected", len(selected), "error", err)
		return err
	}

	f.Log.Info("selected submission complete", "selected", len(selected))
	return nil
}
