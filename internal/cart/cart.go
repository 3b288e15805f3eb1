package cart

import (
	"fmt"
	"time"
)

// Product is the catalog view a line item is created from.
type Product struct {
	ID          int    `json:"productId"`
	Name        string `json:"productName"`
	Description string `json:"productDescription"`
}

// LineItem is one (product, quantity) entry in the cart. Line items are
// unique per product id.
type LineItem struct {
	ProductID          int       `json:"productId"`
	ProductName        string    `json:"productName"`
	ProductDescription string    `json:"productDescription"`
	Quantity           int       `json:"quantity"`
	AddedAt            time.Time `json:"addedAt"`
	OrderDescription   string    `json:"orderDescription"`
}

// Manager holds the cart and rewrites the full snapshot through its Store
// on every mutation, so a restart restores the same contents.
type Manager struct {
	store Store
	items []LineItem

	customerName  string
	customerEmail string

	now func() time.Time
}

// New restores a previously persisted snapshot. An absent or unreadable
// snapshot yields an empty cart.
func New(store Store) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
	}
	if items, err := store.Load(); err == nil {
		m.items = items
	}
	return m
}

// SetCustomer holds the details woven into generated order descriptions.
// Neither field is validated or required.
func (m *Manager) SetCustomer(name, email string) {
	m.customerName = name
	m.customerEmail = email
}

// Add appends a new line item with quantity 1, or increments the existing
// line item for the same product.
func (m *Manager) Add(p Product) error {
	for i := range m.items {
		if m.items[i].ProductID == p.ID {
			m.items[i].Quantity++
			return m.persist()
		}
	}

	m.items = append(m.items, LineItem{
		ProductID:          p.ID,
		ProductName:        p.Name,
		ProductDescription: p.Description,
		Quantity:           1,
		AddedAt:            m.now(),
		OrderDescription: fmt.Sprintf(
			"Customer: %s, Email: %s, Product: %s",
			m.customerName, m.customerEmail, p.Name,
		),
	})
	return m.persist()
}

func (m *Manager) Increment(productID int) error {
	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity++
			return m.persist()
		}
	}
	return nil
}

// Decrement lowers the quantity by one but never below 1; removal is only
// reachable through Remove.
func (m *Manager) Decrement(productID int) error {
	for i := range m.items {
		if m.items[i].ProductID == productID {
			if m.items[i].Quantity > 1 {
				m.items[i].Quantity--
				return m.persist()
			}
			return nil
		}
	}
	return nil
}

// Remove drops the line item regardless of quantity.
func (m *Manager) Remove(productID int) error {
	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return m.persist()
		}
	}
	return nil
}

// Clear empties the cart, resets held customer details and deletes the
// persisted snapshot. Invoked after a successful checkout.
func (m *Manager) Clear() error {
	m.items = nil
	m.customerName = ""
	m.customerEmail = ""
	return m.store.Clear()
}

// Items returns a copy of the current line items in insertion order.
func (m *Manager) Items() []LineItem {
	out := make([]LineItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Len() int { return len(m.items) }

func (m *Manager) persist() error {
	return m.store.Save(m.items)
}
