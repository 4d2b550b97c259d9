package store

import (
	"time"
)

// Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
//
//mapper:to ProductView
//mapper:to ProductRecord, strategy=consuming
type Product struct {
	ID  int64  `json:"id"`
	SKU string `json:"sku"` //mapper:to ProductView, field=Code
	// Name is the display name.
	Name string `json:"name"`
	//mapper:to ProductRecord, exclude
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"` //mapper:to ProductView, field=Price, with=FormatPrice
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Customer represents the user placing orders.
//
//mapper:to CustomerSummary, strategy=all
type Customer struct {
	ID int64 `json:"id"`
	//mapper:to CustomerSummary, with(non-consuming)=MaskEmail, with(consuming)=MaskEmailOwned
	//mapper:to CustomerCard, strategy=non-consuming
	Email    string  `json:"email"`
	FullName string  `json:"full_name"` //mapper:to CustomerSummary, field=Name
	Address  *string `json:"address"`   //mapper:to exclude
	IsActive bool    `json:"is_active"`
}

// Order represents a transaction made by a customer.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"` // Has-Many relationship
	OrderedAt  time.Time   `json:"ordered_at"`
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
//
//mapper:to LineView, strategy=into
type OrderItem struct {
	ProductID, Quantity int64
	Name                string `json:"name"` //mapper:to LineView, field=Title
	UnitPrice           int64  `json:"unit_price"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
