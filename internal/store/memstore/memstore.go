// Package memstore keeps the shop collections in process memory. It backs
// STORE=memory for local runs and the service and API tests.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"ecommercepro-backend/internal/models"
	"ecommercepro-backend/internal/shop"
)

// Store holds products, carts and orders. Values are copied on the way in and
// out so callers never share memory with the stored documents.
type Store struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string // product insertion order
	carts    map[string]models.Cart
	orders   []models.Order
}

func New() *Store {
	return &Store{
		products: make(map[string]models.Product),
		carts:    make(map[string]models.Cart),
	}
}

// Products, Carts and Orders expose the store through the shop ports.
func (s *Store) Products() shop.ProductStore { return productStore{s} }
func (s *Store) Carts() shop.CartStore       { return cartStore{s} }
func (s *Store) Orders() shop.OrderStore     { return orderStore{s} }

// ----- Products -----

type productStore struct{ s *Store }

func (p productStore) List(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	out := []models.Product{}
	for _, id := range p.s.order {
		prod := p.s.products[id]
		if f.Category != nil && prod.Category != *f.Category {
			continue
		}
		if f.Featured != nil && prod.Featured != *f.Featured {
			continue
		}
		out = append(out, prod)
	}
	return out, nil
}

func (p productStore) Get(_ context.Context, id string) (models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	prod, ok := p.s.products[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return prod, nil
}

func (p productStore) Categories(_ context.Context) ([]string, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	seen := map[string]bool{}
	out := []string{}
	for _, prod := range p.s.products {
		if !seen[prod.Category] {
			seen[prod.Category] = true
			out = append(out, prod.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (p productStore) Insert(ctx context.Context, prod models.Product) error {
	return p.InsertMany(ctx, []models.Product{prod})
}

func (p productStore) InsertMany(_ context.Context, ps []models.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, prod := range ps {
		if _, ok := p.s.products[prod.ID]; !ok {
			p.s.order = append(p.s.order, prod.ID)
		}
		p.s.products[prod.ID] = prod
	}
	return nil
}

func (p productStore) Update(_ context.Context, prod models.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.products[prod.ID]; !ok {
		return models.ErrNotFound
	}
	p.s.products[prod.ID] = prod
	return nil
}

func (p productStore) Delete(_ context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.products[id]; !ok {
		return models.ErrNotFound
	}
	delete(p.s.products, id)
	p.s.order = slices.DeleteFunc(p.s.order, func(v string) bool { return v == id })
	return nil
}

func (p productStore) Count(_ context.Context) (int64, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return int64(len(p.s.products)), nil
}

func (p productStore) LowStock(_ context.Context, below int) ([]models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	out := []models.Product{}
	for _, id := range p.s.order {
		if prod := p.s.products[id]; prod.Stock < below {
			out = append(out, prod)
		}
	}
	return out, nil
}

func (p productStore) CategoryCounts(_ context.Context) ([]models.CategoryCount, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	counts := map[string]int64{}
	for _, prod := range p.s.products {
		counts[prod.Category]++
	}
	out := make([]models.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, models.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// ----- Carts -----

type cartStore struct{ s *Store }

func (c cartStore) FindBySession(_ context.Context, sessionID string) (*models.Cart, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	cart, ok := c.s.carts[sessionID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyCart(cart), nil
}

func (c cartStore) Insert(_ context.Context, cart *models.Cart) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.carts[cart.SessionID]; ok {
		return shop.ErrCartExists
	}
	c.s.carts[cart.SessionID] = *copyCart(*cart)
	return nil
}

func (c cartStore) Upsert(_ context.Context, cart *models.Cart) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.carts[cart.SessionID] = *copyCart(*cart)
	return nil
}

func (c cartStore) Replace(_ context.Context, cart *models.Cart) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.carts[cart.SessionID]; !ok {
		return models.ErrNotFound
	}
	c.s.carts[cart.SessionID] = *copyCart(*cart)
	return nil
}

func copyCart(c models.Cart) *models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return &c
}

// ----- Orders -----

type orderStore struct{ s *Store }

func (o orderStore) Insert(_ context.Context, order models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order.Items = append([]models.CartItem{}, order.Items...)
	o.s.orders = append(o.s.orders, order)
	return nil
}

func (o orderStore) List(_ context.Context, limit int64) ([]models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	out := append([]models.Order{}, o.s.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (o orderStore) SetStatus(_ context.Context, id string, status models.OrderStatus) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	for i := range o.s.orders {
		if o.s.orders[i].ID == id {
			o.s.orders[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

func (o orderStore) Count(_ context.Context) (int64, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	return int64(len(o.s.orders)), nil
}

func (o orderStore) Revenue(_ context.Context) (decimal.Decimal, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	total := decimal.Zero
	for _, order := range o.s.orders {
		if order.Status == models.StatusPaid {
			total = total.Add(order.Total)
		}
	}
	return total, nil
}
