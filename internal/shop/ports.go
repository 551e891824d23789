package shop

import (
	"context"

	"github.com/shopspring/decimal"

	"ecommercepro-backend/internal/models"
)

// ProductStore persists products keyed by their application id.
// Get, Update and Delete return models.ErrNotFound for unknown ids.
type ProductStore interface {
	List(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, p models.Product) error
	InsertMany(ctx context.Context, ps []models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	LowStock(ctx context.Context, below int) ([]models.Product, error)
	CategoryCounts(ctx context.Context) ([]models.CategoryCount, error)
}

// CartStore persists carts keyed by session id.
type CartStore interface {
	// FindBySession returns models.ErrNotFound when the session has no cart.
	FindBySession(ctx context.Context, sessionID string) (*models.Cart, error)
	// Insert returns ErrCartExists if a cart for the session is already stored.
	Insert(ctx context.Context, c *models.Cart) error
	// Upsert replaces the whole document for the session, inserting if absent.
	Upsert(ctx context.Context, c *models.Cart) error
	// Replace overwrites an existing cart and returns models.ErrNotFound otherwise.
	Replace(ctx context.Context, c *models.Cart) error
}

type OrderStore interface {
	Insert(ctx context.Context, o models.Order) error
	// List returns orders newest first; limit <= 0 means all.
	List(ctx context.Context, limit int64) ([]models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) error
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}
