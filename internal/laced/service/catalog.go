package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidFilter   = errors.New("invalid product filter")
)

// DefaultPageSize applies when a listing does not ask for a limit.
const DefaultPageSize = 24

// CatalogService serves the read-only product catalog.
type CatalogService struct {
	Store store.Store
	Now   func() time.Time
}

// ProductPage is one page of a listing.
type ProductPage struct {
	Products []domain.Product
	Total    int
}

// ListProducts returns the products matching f. A zero Limit means
// DefaultPageSize and limits above domain.MaxPageSize are clamped.
func (s *CatalogService) ListProducts(ctx context.Context, f domain.ProductFilter) (ProductPage, error) {
	if !f.Sort.Valid() {
		return ProductPage{}, ErrInvalidFilter
	}
	if f.Limit < 0 || f.Offset < 0 {
		return ProductPage{}, ErrInvalidFilter
	}
	if f.MaxPriceCents > 0 && f.MinPriceCents > f.MaxPriceCents {
		return ProductPage{}, ErrInvalidFilter
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageSize
	}
	f.Limit = min(f.Limit, domain.MaxPageSize)

	products, total, err := s.Store.Products().ListProducts(ctx, f)
	if err != nil {
		return ProductPage{}, unavailable(err)
	}
	return ProductPage{Products: products, Total: total}, nil
}

// GetProduct fetches one product. Ids that are not UUIDs cannot exist and
// report ErrProductNotFound without a lookup.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, ErrProductNotFound
	}

	p, err := s.Store.Products().GetProductByID(ctx, parsed.String())
	if errors.Is(err, store.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, unavailable(err)
	}
	return p, nil
}

// Seed loads the starter lineup into an empty catalog. It returns the number
// of products inserted, which is zero when the catalog already has entries.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	empty, err := s.Store.Products().IsEmpty(ctx)
	if err != nil {
		return 0, unavailable(err)
	}
	if !empty {
		return 0, nil
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	products := seedProducts(now)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, p := range products {
			if err := tx.Products().CreateProduct(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, unavailable(err)
	}

	slogx.FromContext(ctx).Info("catalog seeded", "products", len(products))
	return len(products), nil
}
