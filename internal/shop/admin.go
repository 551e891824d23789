package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommercepro-backend/internal/models"
)

const (
	lowStockThreshold = 10
	recentOrdersLimit = 5
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Stock       int
	Featured    bool
}

func (in ProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return models.Invalidf("Product name is required")
	case in.Price.IsNegative():
		return models.Invalidf("Price must not be negative")
	case !representable(in.Price):
		return models.Invalidf("Price has too many digits")
	case in.Stock < 0:
		return models.Invalidf("Stock must not be negative")
	}
	return nil
}

// representable reports whether d fits a Decimal128 (34 significant digits),
// the widest money value any store keeps.
func representable(d decimal.Decimal) bool {
	_, err := primitive.ParseDecimal128(d.String())
	return err == nil
}

// Admin backs the dashboard: product writes, order management and stats.
type Admin struct {
	log      *slog.Logger
	products ProductStore
	orders   OrderStore
}

func NewAdmin(log *slog.Logger, products ProductStore, orders OrderStore) *Admin {
	return &Admin{log: log, products: products, orders: orders}
}

func (a *Admin) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}
	p := in.product(uuid.NewString())
	if err := a.products.Insert(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	a.log.Info("product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}
	p := in.product(id)
	err := a.products.Update(ctx, p)
	if errors.Is(err, models.ErrNotFound) {
		return models.Product{}, models.NotFoundf("Product not found")
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	a.log.Info("product updated", "product_id", id)
	return p, nil
}

func (a *Admin) DeleteProduct(ctx context.Context, id string) error {
	err := a.products.Delete(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.NotFoundf("Product not found")
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	a.log.Info("product deleted", "product_id", id)
	return nil
}

func (a *Admin) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := a.orders.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// SetOrderStatus overwrites the status; any valid status may follow any other.
func (a *Admin) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !status.Valid() {
		return models.Invalidf("Invalid status")
	}
	err := a.orders.SetStatus(ctx, id, status)
	if errors.Is(err, models.ErrNotFound) {
		return models.NotFoundf("Order not found")
	}
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	a.log.Info("order status updated", "order_id", id, "status", status)
	return nil
}

func (a *Admin) Stats(ctx context.Context) (models.Stats, error) {
	var (
		st  models.Stats
		err error
	)
	if st.TotalProducts, err = a.products.Count(ctx); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	if st.TotalOrders, err = a.orders.Count(ctx); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	if st.TotalRevenue, err = a.orders.Revenue(ctx); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	if st.LowStockProducts, err = a.products.LowStock(ctx, lowStockThreshold); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	if st.RecentOrders, err = a.orders.List(ctx, recentOrdersLimit); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	if st.CategoryStats, err = a.products.CategoryCounts(ctx); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	return st, nil
}

func (in ProductInput) product(id string) models.Product {
	return models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		Featured:    in.Featured,
	}
}
