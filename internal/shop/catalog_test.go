package shop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommercepro-backend/internal/models"
	"ecommercepro-backend/internal/shop"
	"ecommercepro-backend/internal/store/memstore"
)

func TestCatalog(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	_, err := shop.NewSeeder(discardLogger(), st.Products(), st.Orders()).SeedCatalog(ctx)
	require.NoError(t, err)
	catalog := shop.NewCatalog(st.Products())

	electronics, beauty := "Electronics", "Beauty"
	yes, no := true, false

	tests := []struct {
		name   string
		filter models.ProductFilter
		want   int
	}{
		{name: "no filter", filter: models.ProductFilter{}, want: 6},
		{name: "category", filter: models.ProductFilter{Category: &beauty}, want: 2},
		{name: "featured", filter: models.ProductFilter{Featured: &yes}, want: 2},
		{name: "not featured", filter: models.ProductFilter{Featured: &no}, want: 4},
		{name: "both", filter: models.ProductFilter{Category: &electronics, Featured: &no}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.ListProducts(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	cats, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Electronics", "Beauty", "Home & Design", "Personal Care"}, cats)

	all, err := catalog.ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	p, err := catalog.GetProduct(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0], p)

	_, err = catalog.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Product not found", models.Message(err))
}
