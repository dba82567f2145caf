package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/repos"
	"backoffice/internal/services"
)

func TestCatalog_Availability(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := services.NewCatalogService(s.Products)

	cases := []struct {
		stock int
		want  domain.ProductStatus
	}{
		{stock: 10, want: domain.ProductInStock},
		{stock: 9, want: domain.ProductLowStock},
		{stock: 1, want: domain.ProductLowStock},
		{stock: 0, want: domain.ProductOutOfStock},
	}
	for _, tc := range cases {
		p := addProduct(t, s, "p", 1, tc.stock)
		a, err := svc.Availability(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, a.Status, "stock %d", tc.stock)
		assert.Equal(t, tc.stock, a.Qty)
	}

	_, err := svc.Availability(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Categories(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, cat := range []string{"Science", "Fiction", "Science", "History"} {
		_, err := s.Products.Create(ctx, repos.ProductDraft{Name: "n", Category: cat})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Fiction", "History", "Science"}, services.NewCatalogService(s.Products).Categories(ctx))
}

func TestCatalog_DegradesOnFault(t *testing.T) {
	svc := services.NewCatalogService(repos.NewProductRepo(brokenBackend{}, clock))

	featured := svc.Featured(context.Background())
	assert.NotNil(t, featured)
	assert.Empty(t, featured)

	cats := svc.Categories(context.Background())
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}
