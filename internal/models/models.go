package models

import (
	"time"
)

type Product struct {
	ID          int    `gorm:"primaryKey;autoIncrement"            json:"productId"`
	Name        string `gorm:"column:product_name;not null"        json:"productName"`
	Description string `gorm:"column:product_description;not null" json:"productDescription"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID          int       `gorm:"primaryKey;autoIncrement"   json:"orderId"`
	Description string    `gorm:"column:order_description"   json:"orderDescription"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

func (Order) TableName() string { return "orders" }

// OrderProductMap links one order to one product. The composite unique
// index backs the ON CONFLICT upsert in the update path, so the same
// (order, product) pair never appears twice.
type OrderProductMap struct {
	ID        int `gorm:"primaryKey;autoIncrement"               json:"id"`
	OrderID   int `gorm:"not null;uniqueIndex:idx_order_product" json:"orderId"`
	ProductID int `gorm:"not null;uniqueIndex:idx_order_product" json:"productId"`
	Quantity  int `gorm:"not null;check:quantity>0"              json:"quantity"`
}

func (OrderProductMap) TableName() string { return "order_product_map" }
