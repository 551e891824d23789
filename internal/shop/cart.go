package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ecommercepro-backend/internal/models"
)

// ErrCartExists is returned by CartStore.Insert when another request created
// the session's cart first.
var ErrCartExists = errors.New("cart already exists")

// Carts manages session carts. Mutations are read-modify-write against the
// store without locking, so two concurrent adds for one session may lose one
// of the updates (last writer wins on the whole document).
type Carts struct {
	log      *slog.Logger
	carts    CartStore
	products ProductStore
	now      func() time.Time
}

func NewCarts(log *slog.Logger, carts CartStore, products ProductStore) *Carts {
	return &Carts{log: log, carts: carts, products: products, now: time.Now}
}

func (s *Carts) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart = models.NewCart(uuid.NewString(), sessionID, s.now())
	err = s.carts.Insert(ctx, cart)
	if errors.Is(err, ErrCartExists) {
		// Lost the race to a concurrent first read; use the stored one.
		cart, err = s.carts.FindBySession(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	s.log.Debug("cart created", "session_id", sessionID, "cart_id", cart.ID)
	return cart, nil
}

func (s *Carts) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFoundf("Product not found")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	if quantity < 1 {
		return nil, models.Invalidf("Quantity must be at least 1")
	}
	if product.Stock < quantity {
		return nil, models.Invalidf("Insufficient stock")
	}

	cart, err := s.carts.FindBySession(ctx, sessionID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		cart = models.NewCart(uuid.NewString(), sessionID, s.now())
	case err != nil:
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart.AddItem(product.ID, quantity, product.Price, s.now())

	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *Carts) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFoundf("Cart not found")
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if !cart.SetQuantity(productID, quantity, s.now()) {
		return nil, models.NotFoundf("Item not found in cart")
	}

	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the session's cart. A session without a cart is left alone.
func (s *Carts) Clear(ctx context.Context, sessionID string) error {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	cart.Clear(s.now())
	if err := s.carts.Replace(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
