package services

import (
	"context"
	"sort"

	"backoffice/internal/domain"
	"backoffice/internal/log"
	"backoffice/internal/repos"
)

const inStockFrom = 10

// CatalogService serves the unauthenticated storefront reads.
type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// Featured never fails; a storage fault yields an empty list.
func (s *CatalogService) Featured(ctx context.Context) []domain.Product {
	out, err := s.Prods.Featured(ctx)
	if err != nil {
		log.Error(nil, "catalog.featured", err, nil)
		return []domain.Product{}
	}
	return out
}

// Categories lists the distinct product categories, sorted.
func (s *CatalogService) Categories(ctx context.Context) []string {
	items, err := s.Prods.List(ctx)
	if err != nil {
		log.Error(nil, "catalog.categories", err, nil)
		return []string{}
	}
	seen := map[string]bool{}
	out := []string{}
	for _, p := range items {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Availability converts stock to In Stock / Low Stock / Out of Stock.
func (s *CatalogService) Availability(ctx context.Context, productID int) (domain.Availability, error) {
	p, err := s.Prods.Get(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	status := domain.ProductOutOfStock
	switch {
	case p.Stock >= inStockFrom:
		status = domain.ProductInStock
	case p.Stock > 0:
		status = domain.ProductLowStock
	}
	return domain.Availability{ProductID: p.ID, Status: status, Qty: p.Stock}, nil
}
