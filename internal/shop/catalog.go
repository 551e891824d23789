package shop

import (
	"context"
	"errors"
	"fmt"

	"ecommercepro-backend/internal/models"
)

// Catalog is the read side of the product collection.
type Catalog struct {
	products ProductStore
}

func NewCatalog(products ProductStore) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	products, err := c.products.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *Catalog) GetProduct(ctx context.Context, id string) (models.Product, error) {
	p, err := c.products.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Product{}, models.NotFoundf("Product not found")
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (c *Catalog) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := c.products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
