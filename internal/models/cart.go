package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string          `bson:"product_id" json:"product_id"`
	Quantity  int             `bson:"quantity" json:"quantity"`
	Price     decimal.Decimal `bson:"price" json:"price"`
}

// Cart is keyed by SessionID; there is at most one per session.
type Cart struct {
	ID        string          `bson:"id" json:"id"`
	UserID    *string         `bson:"user_id" json:"user_id"`
	SessionID string          `bson:"session_id" json:"session_id"`
	Items     []CartItem      `bson:"items" json:"items"`
	Total     decimal.Decimal `bson:"total" json:"total"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

func NewCart(id, sessionID string, now time.Time) *Cart {
	return &Cart{
		ID:        id,
		SessionID: sessionID,
		Items:     []CartItem{},
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges quantity into an existing line for productID, re-snapping
// its price, or appends a new line.
func (c *Cart) AddItem(productID string, quantity int, price decimal.Decimal, now time.Time) {
	found := false
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].Price = price
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity, Price: price})
	}
	c.touch(now)
}

// SetQuantity sets the line for productID to exactly quantity, removing it
// when quantity <= 0. It reports false if no such line exists.
func (c *Cart) SetQuantity(productID string, quantity int, now time.Time) bool {
	for i, item := range c.Items {
		if item.ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		c.touch(now)
		return true
	}
	return false
}

func (c *Cart) Clear(now time.Time) {
	c.Items = []CartItem{}
	c.touch(now)
}

// Item returns the line for productID, if present.
func (c *Cart) Item(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c *Cart) touch(now time.Time) {
	c.Total = SumItems(c.Items)
	c.UpdatedAt = now
}

// SumItems returns the exact sum of price*quantity over items.
func SumItems(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
