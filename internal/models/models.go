// models.go

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID          string          `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	Price       decimal.Decimal `bson:"price" json:"price"`
	Category    string          `bson:"category" json:"category"`
	ImageURL    string          `bson:"image_url" json:"image_url"`
	Stock       int             `bson:"stock" json:"stock"`
	Featured    bool            `bson:"featured" json:"featured"`
}

// ProductFilter holds optional equality filters; nil means unconstrained.
type ProductFilter struct {
	Category *string
	Featured *bool
}

type CategoryCount struct {
	Category string `bson:"category" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

type Order struct {
	ID              string            `bson:"id" json:"id"`
	UserID          *string           `bson:"user_id" json:"user_id"`
	SessionID       string            `bson:"session_id" json:"session_id"`
	Items           []CartItem        `bson:"items" json:"items"`
	Total           decimal.Decimal   `bson:"total" json:"total"`
	Status          OrderStatus       `bson:"status" json:"status"`
	PaymentIntentID *string           `bson:"payment_intent_id" json:"payment_intent_id"`
	ShippingAddress map[string]string `bson:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalProducts    int64           `json:"total_products"`
	TotalOrders      int64           `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	LowStockProducts []Product       `json:"low_stock_products"`
	RecentOrders     []Order         `json:"recent_orders"`
	CategoryStats    []CategoryCount `json:"category_stats"`
}
