package shop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ecommercepro-backend/internal/models"
)

// Seeder fills an empty catalog and creates demo orders for manual testing.
type Seeder struct {
	log      *slog.Logger
	products ProductStore
	orders   OrderStore
	now      func() time.Time
}

func NewSeeder(log *slog.Logger, products ProductStore, orders OrderStore) *Seeder {
	return &Seeder{log: log, products: products, orders: orders, now: time.Now}
}

// SeedCatalog inserts the sample products if the catalog is empty. It reports
// whether anything was inserted.
func (s *Seeder) SeedCatalog(ctx context.Context) (bool, error) {
	n, err := s.products.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	products := SampleProducts()
	if err := s.products.InsertMany(ctx, products); err != nil {
		return false, fmt.Errorf("insert sample products: %w", err)
	}
	s.log.Info("seeded sample catalog", "products", len(products))
	return true, nil
}

func (s *Seeder) CreateSampleOrder(ctx context.Context) (models.Order, error) {
	payment := "pi_demo_123"
	o := models.Order{
		ID:        uuid.NewString(),
		SessionID: "demo_session",
		Items: []models.CartItem{
			{ProductID: "sample", Quantity: 2, Price: decimal.RequireFromString("299.99")},
		},
		Total:           decimal.RequireFromString("599.98"),
		Status:          models.StatusPaid,
		PaymentIntentID: &payment,
		ShippingAddress: map[string]string{
			"name":        "Demo Customer",
			"address":     "123 Demo Street",
			"city":        "Demo City",
			"postal_code": "12345",
			"country":     "US",
		},
		CreatedAt: s.now(),
	}
	if err := s.orders.Insert(ctx, o); err != nil {
		return models.Order{}, fmt.Errorf("create sample order: %w", err)
	}
	return o, nil
}

// SampleProducts returns the demo catalog with fresh ids.
func SampleProducts() []models.Product {
	p := func(name, desc, price, category, image string, stock int, featured bool) models.Product {
		return models.Product{
			ID:          uuid.NewString(),
			Name:        name,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Category:    category,
			ImageURL:    image,
			Stock:       stock,
			Featured:    featured,
		}
	}
	return []models.Product{
		p("iMac 24\" Silver",
			"Powerful all-in-one desktop with M1 chip, perfect for professionals and creators.",
			"1299.99", "Electronics",
			"https://images.unsplash.com/photo-1612631656340-ad1e06d3a0de?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDQ2NDF8MHwxfHNlYXJjaHwyfHxwcm9mZXNzaW9uYWwlMjBwcm9kdWN0c3xlbnwwfHx8fDE3NTQ2MDE5OTd8MA&ixlib=rb-4.1.0&q=85",
			15, true),
		p("MacBook Pro Setup",
			"Professional workspace setup with MacBook Pro, perfect for remote work and productivity.",
			"2499.99", "Electronics",
			"https://images.unsplash.com/photo-1612999087483-b6b89bcf07dc?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDQ2NDF8MHwxfHNlYXJjaHwzfHxwcm9mZXNzaW9uYWwlMjBwcm9kdWN0c3xlbnwwfHx8fDE3NTQ2MDE5OTd8MA&ixlib=rb-4.1.0&q=85",
			8, true),
		p("Luxury Cosmetic Collection",
			"Premium black and gold cosmetic collection for the modern professional.",
			"299.99", "Beauty",
			"https://images.unsplash.com/photo-1641471159312-6e09825bc10b?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDQ2NDF8MHwxfHNlYXJjaHw0fHxwcm9mZXNzaW9uYWwlMjBwcm9kdWN0c3xlbnwwfHx8fDE3NTQ2MDE5OTd8MA&ixlib=rb-4.1.0&q=85",
			25, false),
		p("Modern Design Object",
			"Contemporary 3D design piece that adds sophistication to any space.",
			"199.99", "Home & Design",
			"https://images.unsplash.com/photo-1728467459756-211f3c738697?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDQ2NDF8MHwxfHNlYXJjaHwxfHxwcm9mZXNzaW9uYWwlMjBwcm9kdWN0c3xlbnwwfHx8fDE3NTQ2MDE5OTd8MA&ixlib=rb-4.1.0&q=85",
			12, false),
		p("Professional Oral Care Set",
			"Premium dental care products for maintaining professional appearance.",
			"49.99", "Personal Care",
			"https://images.unsplash.com/photo-1691096673040-1632eb4b0a9d?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NDk1ODB8MHwxfHNlYXJjaHwyfHxlY29tbWVyY2UlMjBwcm9kdWN0c3xlbnwwfHx8fDE3NTQ2MDIwMDN8MA&ixlib=rb-4.1.0&q=85",
			50, false),
		p("Skincare Essentials",
			"Professional-grade skincare products for daily routine.",
			"159.99", "Beauty",
			"https://images.pexels.com/photos/8468149/pexels-photo-8468149.jpeg",
			30, false),
	}
}
